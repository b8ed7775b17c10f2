package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/sha9506/HireRank/internal/jobdesc"
	"github.com/sha9506/HireRank/internal/types"
)

// NotFoundError indicates the requested analysis does not exist.
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("analysis %s not found", e.ID)
}

// ValidationError indicates a malformed or invalid request payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// NoDatabaseError indicates a persistence endpoint was hit while the server
// runs without a database.
type NoDatabaseError struct{}

func (e *NoDatabaseError) Error() string {
	return "persistence is not configured"
}

// HTTPStatus maps an error to the HTTP status code it should produce.
func HTTPStatus(err error) int {
	var notFound *NotFoundError
	var validation *ValidationError
	var input *types.InputError
	var noDB *NoDatabaseError
	var fetch *jobdesc.Error

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &input):
		return http.StatusBadRequest
	case errors.As(err, &noDB):
		return http.StatusServiceUnavailable
	case errors.As(err, &fetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
