// Package models holds the wire shapes exchanged with the task-tracking
// backend: identities, users, tasks and the query parameters for listing
// them.
package models
