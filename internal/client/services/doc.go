// Package services contains the typed resource clients used by the views
// and the CLI: authentication, user management and task management.
//
// Every call returns its payload and an error. Errors coming from the
// backend are *client.APIError values; a 2xx reply without a payload is
// reported as client.ErrMissingData.
package services
