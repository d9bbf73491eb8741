// Package cli provides the interactive taskadmin command-line client.
//
// It wires configuration, the local session store, the API services and
// the management views into a line-oriented REPL. A session saved by an
// earlier run is resumed on start.
//
// Key features:
//   - Login / Logout / whoami
//   - User administration (admins only): list, search, create, edit
//   - Tasks: list all or own, filter, create, edit, delete, show
//   - Export of the loaded task list to an S3 bucket
package cli
