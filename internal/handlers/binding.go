package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// bindingErrorMessage turns gin binding failures into a readable message,
// naming each field that failed validation instead of dumping the raw error.
func bindingErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body: " + err.Error()
	}

	parts := make([]string, len(verrs))
	for i, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts[i] = fmt.Sprintf("%s is required", fe.Field())
		case "email":
			parts[i] = fmt.Sprintf("%s must be a valid email address", fe.Field())
		case "min":
			parts[i] = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		case "oneof":
			parts[i] = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			parts[i] = fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return "Invalid request body: " + strings.Join(parts, "; ")
}
