package views

import (
	"errors"

	"github.com/dmitrijs2005/taskadmin/internal/client/client"
)

// Banner is the transient outcome line shown above a list. Both fields are
// set only when a mutation went through but the reload after it failed.
type Banner struct {
	Error   string
	Success string
}

func (b *Banner) Clear() {
	b.Error = ""
	b.Success = ""
}

func (b *Banner) fail(msg string) {
	b.Success = ""
	b.Error = msg
}

func (b *Banner) succeed(msg string) {
	b.Error = ""
	b.Success = msg
}

// remote reports whether err came back from the backend, as opposed to a
// local storage or encoding failure.
func remote(err error) bool {
	var apiErr *client.APIError
	return errors.As(err, &apiErr) || errors.Is(err, client.ErrMissingData)
}

// absorb moves a backend error into the banner. Other errors are returned.
func (b *Banner) absorb(err error) error {
	if remote(err) {
		b.fail(client.Message(err))
		return nil
	}
	return err
}

// report records a failed list load. A pending success message is kept.
func (b *Banner) report(err error) error {
	if remote(err) {
		b.Error = client.Message(err)
		return nil
	}
	return err
}
