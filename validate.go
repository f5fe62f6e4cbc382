package recall

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// requestValidator checks `validate` tags on request payloads before a byte
// leaves the process, so obviously broken requests fail without a round trip.
var requestValidator = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(payload any) error {
	err := requestValidator.Struct(payload)
	if err == nil {
		return nil
	}
	// Non-struct payloads (raw maps, slices) carry no tags to check.
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return nil
	}
	var fields validator.ValidationErrors
	if errors.As(err, &fields) && len(fields) > 0 {
		first := fields[0]
		return ConfigError{Reason: fmt.Sprintf("invalid request: field %s failed %q validation", first.Field(), first.Tag())}
	}
	return ConfigError{Reason: "invalid request: " + err.Error()}
}
