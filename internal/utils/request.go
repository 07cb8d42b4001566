package utils

import (
	"errors"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/storefront/internal/errors"
	"github.com/aaravmahajanofficial/storefront/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and validates it. On
// failure it writes the error response and returns false.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithDetail(err.Error()))
		return false
	}

	return Validate(w, dest, validate)
}

// Validate checks data against its struct tags and writes the validation
// response when it fails.
func Validate(w http.ResponseWriter, data any, validate *validator.Validate) bool {

	err := ValidateStruct(validate, data)
	if err == nil {
		return true
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		response.ValidationError(w, validationErrs)
		return false
	}

	response.Error(w, appErrors.InternalError("Failed to validate request").WithError(err))
	return false
}

// ParseID reads a positive integer path parameter.
func ParseID(r *http.Request, name string) (int, error) {

	raw := r.PathValue(name)

	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError("Invalid " + name).WithDetail(raw)
	}

	return id, nil
}
