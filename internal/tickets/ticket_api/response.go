package ticket_api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"ms-tickets/internal/models"
)

var validate = validator.New()

// FieldError is one entry in the 422 response detail list.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type detailBody struct {
	Detail string `json:"detail"`
}

type fieldErrorBody struct {
	Detail []FieldError `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, detailBody{Detail: "Ticket not found"})
}

func writeValidationErrors(w http.ResponseWriter, errs []FieldError) {
	writeJSON(w, http.StatusUnprocessableEntity, fieldErrorBody{Detail: errs})
}

// writeBodyError reports an undecodable request body as a validation failure.
func writeBodyError(w http.ResponseWriter, err error) {
	writeValidationErrors(w, []FieldError{
		{Field: "body", Message: "invalid request body: " + err.Error()},
	})
}

// validateCreate checks the create payload and projects validator errors
// into the wire shape.
func validateCreate(payload models.TicketCreate) []FieldError {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []FieldError{{Field: "body", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		out = append(out, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: messageForTag(fe.Tag()),
		})
	}
	return out
}

func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "field required"
	case "min":
		return "must not be empty"
	default:
		return "invalid value"
	}
}
