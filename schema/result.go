package schema

// Result is the outcome of one logical API request.
// Success implies Error is nil; a failure always carries an Error.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   *Error `json:"error,omitempty"`
}

// Ok creates a successful result
func Ok[T any](data T) *Result[T] {
	return &Result[T]{Success: true, Data: data}
}

// Fail creates a failed result
func Fail[T any](err *Error) *Result[T] {
	if err == nil {
		err = NewError(CodeInvalidRequest, "", nil)
	}
	return &Result[T]{Error: err}
}

// Err returns the failure as an error, or nil on success
func (r *Result[T]) Err() error {
	if r.Success {
		return nil
	}
	return r.Error
}
