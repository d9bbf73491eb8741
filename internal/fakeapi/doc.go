// Package fakeapi is an in-memory implementation of the task-tracking
// backend consumed by the taskadmin client. It serves the same endpoints
// with the same JSON shapes and error conventions, and is used for local
// demos and end-to-end tests.
package fakeapi
