package client

// Response is the uniform result of every network call.
// Exactly one of Data and Error is set.
type Response[T any] struct {
	Data   *T
	Error  string
	Status int
}

// OK reports whether the call produced a payload.
func (r Response[T]) OK() bool {
	return r.Error == "" && r.Data != nil
}

// Unwrap converts the envelope into the payload or an error.
func (r Response[T]) Unwrap() (T, error) {
	var zero T
	if r.Error != "" {
		return zero, &APIError{Status: r.Status, Message: r.Error}
	}
	if r.Data == nil {
		return zero, ErrMissingData
	}
	return *r.Data, nil
}

// Err is like Unwrap but accepts a missing payload, for calls such as
// DELETE where the backend may answer with an empty body.
func (r Response[T]) Err() error {
	if r.Error != "" {
		return &APIError{Status: r.Status, Message: r.Error}
	}
	return nil
}
