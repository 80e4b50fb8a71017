package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Error is the application-level error object the API returns instead of a
// bare HTTP status.
type Error struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: http %d", e.Status)
	}
	return fmt.Sprintf("api: %s (code %d, http %d)", e.Message, e.Code, e.Status)
}

// decodeError reads a non-2xx response into an *Error. Bodies that are not
// the expected JSON shape still yield a usable error with the HTTP status.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}
