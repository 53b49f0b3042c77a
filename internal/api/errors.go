package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is the normalized failure for any non-2xx response from the
// clinic backend. Message is the best human-readable text the response
// body offered.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// errorBody mirrors the error shapes the backend emits. detail may be a
// plain string or a validation array of {loc, msg} objects.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Err     string          `json:"error"`
}

type validationItem struct {
	Loc []json.RawMessage `json:"loc"`
	Msg string            `json:"msg"`
}

// newError extracts a message from an error response body, in priority
// order: detail (string or validation array), message, error. An empty
// or non-JSON body falls back to "HTTP <status>: <statusText>".
func newError(status int, body []byte) *Error {
	if msg := extractMessage(body); msg != "" {
		return &Error{Status: status, Message: msg}
	}
	return &Error{
		Status:  status,
		Message: fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status)),
	}
}

func extractMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}

	if len(eb.Detail) > 0 {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
		var items []validationItem
		if err := json.Unmarshal(eb.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if strings.TrimSpace(it.Msg) != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if strings.TrimSpace(eb.Message) != "" {
		return eb.Message
	}
	if strings.TrimSpace(eb.Err) != "" {
		return eb.Err
	}
	return ""
}
