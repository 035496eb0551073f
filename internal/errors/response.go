package errors

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError converts err to a structured error, logs it and writes the
// client-facing JSON body.
func WriteError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	structuredErr := AsStructuredError(err)
	logError(r, log, structuredErr)
	WriteJSON(w, structuredErr.HTTPStatus(), structuredErr.ToResponse())
}

func logError(r *http.Request, log logrus.FieldLogger, err *Error) {
	if log == nil {
		return
	}
	fields := logrus.Fields{
		"error_type": err.Type,
		"message":    err.Message,
		"path":       r.URL.Path,
		"method":     r.Method,
		"status":     err.HTTPStatus(),
	}
	for k, v := range err.Context {
		fields[k] = v
	}
	if err.Cause != nil {
		fields["cause"] = err.Cause.Error()
	}
	entry := log.WithFields(fields)

	switch err.Type {
	case TypeValidation, TypeNotFound, TypeUnauthorized:
		entry.Info("Request rejected")
	case TypeConflict:
		entry.Warn("Conflict")
	default:
		entry.Error("Internal error")
	}
}
