// Package views holds the state of the user and task management screens:
// the loaded rows, paging and filters, which dialog is open, and the
// success/error banner. Rendering is left to the caller.
package views
