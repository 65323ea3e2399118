package api

import (
	"encoding/json"
	"errors"
	"net/http"
)

const (
	// fallbackNetworkMessage is shown when an error body cannot be parsed.
	fallbackNetworkMessage = "Network error"
	// fallbackGenericMessage is shown when the server sent no message.
	fallbackGenericMessage = "Something went wrong"
)

// Error is the normalized shape of every failed HTTP response. Message is
// what views and commands show to the user, either the server-supplied
// message or a generic fallback.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// IsUnauthorized reports whether err is an API error with status 401.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// decodeError turns a non-2xx response into *Error. Authentication,
// validation and server failures all collapse into one message-bearing
// shape, mirroring what the API itself returns.
func decodeError(resp *http.Response) *Error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: fallbackNetworkMessage}
	}
	if body.Message == "" {
		return &Error{StatusCode: resp.StatusCode, Message: fallbackGenericMessage}
	}
	return &Error{StatusCode: resp.StatusCode, Message: body.Message}
}
