package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/mlb-team-timeline/internal/usecase"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "mlb-team-timeline"
	internalMessage  = "internal server error"
)

type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorMappings is checked in order; the first sentinel matched with
// errors.Is decides the response.
var errorMappings = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{usecase.ErrNoMatch, mappedError{http.StatusNotFound, "noMatch", "NOT_FOUND"}},
	{usecase.ErrEmptyRoster, mappedError{http.StatusNotFound, "emptyRoster", "NOT_FOUND"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

func mapError(err error) mappedError {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.mapped
		}
	}
	return internalError
}

func writeJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError maps err onto the envelope. Messages of unmapped errors are
// replaced so internals never reach the client.
func writeError(_ context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(err)
	msg := internalMessage
	if mapped != internalError && err != nil {
		msg = err.Error()
	}
	writeMapped(w, mapped, msg)
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeMapped(w, internalError, internalMessage)
}

func writeMapped(w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(w, mapped.HTTPStatus, envelope{
		APIVersion: googleAPIVersion,
		Error: &errorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: msg}},
		},
	})
}
