package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/recipegraph/internal/errors"
	"github.com/rohankatakam/recipegraph/internal/logging"
)

// retryAfterSeconds is advertised on failures that may succeed when repeated
const retryAfterSeconds = "5"

// APIError is the error body every failed request answers with: {"error": "..."}
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`

	headers http.Header
}

func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *APIError) GetStatus() int {
	return e.Status
}

// GetHeaders implements huma.HeadersError
func (e *APIError) GetHeaders() http.Header {
	return e.headers
}

func init() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		// Client errors may carry validation details; server errors never carry causes
		if status < 500 && len(errs) > 0 {
			details := make([]string, 0, len(errs))
			for _, err := range errs {
				if err != nil {
					details = append(details, err.Error())
				}
			}
			if len(details) > 0 {
				msg = msg + ": " + strings.Join(details, "; ")
			}
		}
		return &APIError{Status: status, Message: msg}
	}
}

// fail logs the full error and returns the sanitized client response
func (s *Server) fail(ctx context.Context, operation string, err error) error {
	entry := s.logger.WithError(err).WithFields(logrus.Fields{
		"operation":  operation,
		"request_id": logging.RequestIDFromContext(ctx),
	})
	var typed *errors.Error
	if stderrors.As(err, &typed) {
		entry = entry.WithField("error_type", typed.Type)
		for k, v := range typed.Context {
			entry = entry.WithField(k, v)
		}
	}
	entry.WithField("severity", errors.GetSeverity(err)).Error("request failed")

	apiErr := &APIError{Status: errors.HTTPStatus(err), Message: errors.PublicMessage(err)}
	if errors.IsRetryable(err) {
		apiErr.headers = http.Header{"Retry-After": []string{retryAfterSeconds}}
	}
	return apiErr
}

// writeAPIError answers outside huma (router fallbacks, middleware) with the same body
func writeAPIError(w http.ResponseWriter, status int, msg string, logger logrus.FieldLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(&APIError{Message: msg}); err != nil {
		logger.WithError(err).Warn("failed to write error response")
	}
}
