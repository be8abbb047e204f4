package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// unprocessableMessage is the message of the synthetic envelope built for bodies
// that cannot be decoded.
const unprocessableMessage = "Cannot process response"

// Result is the uniform envelope returned by every client operation.
type Result struct {
	OK   bool
	Data map[string]any
}

// ResponseError describes a Result whose OK flag is false.
type ResponseError struct {
	Operation string
	Data      map[string]any
}

func (e *ResponseError) Error() string {
	if msg, ok := e.Data["message"].(string); ok && msg != "" {
		return fmt.Sprintf("%s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("%s: request was not successful", e.Operation)
}

// Err returns nil for a successful result and a *ResponseError otherwise.
func (r Result) Err(operation string) error {
	if r.OK {
		return nil
	}
	return &ResponseError{Operation: operation, Data: r.Data}
}

// normalize turns a completed response into a Result. A body that is not a JSON
// object yields the synthetic failure envelope regardless of the status code.
// Only a failure to read the body is returned as an error.
func normalize(resp *http.Response) (Result, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("%w: reading response body: %w", ErrTransport, err)
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return unprocessable(err), nil
	}
	if data == nil {
		// a literal null decodes without error
		return unprocessable(fmt.Errorf("response body is null")), nil
	}

	return Result{
		OK:   resp.StatusCode >= 200 && resp.StatusCode < 300,
		Data: data,
	}, nil
}

func unprocessable(err error) Result {
	return Result{
		OK: false,
		Data: map[string]any{
			"message": unprocessableMessage,
			"error":   err.Error(),
		},
	}
}
