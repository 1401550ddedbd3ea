package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kitchencloud/backend/internal/interfaces/http/dto"
)

var (
	// digits with an optional leading +, spaces and dashes allowed as separators
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,30}$`)
	// coupon codes are matched case-insensitively, so only the alphabet is checked here
	couponPattern = regexp.MustCompile(`^[A-Za-z0-9_\-]+$`)
)

// SetupValidator registers the order API validators on gin's engine and
// makes validation errors report JSON field names.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(jsonFieldName)
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("coupon", func(fl validator.FieldLevel) bool {
		code := strings.TrimSpace(fl.Field().String())
		return code == "" || couponPattern.MatchString(code)
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		name, _, _ = strings.Cut(fld.Tag.Get("form"), ",")
	}
	return name
}

// FormatValidationErrors builds the VALIDATION_ERROR envelope with one detail per failed field
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   validationFieldPath(e),
				Message: validationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse("Request validation failed", requestID, details)
}

// HandleValidationError writes a 400 validation error response
func HandleValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, GetRequestID(c)))
}

// validationFieldPath strips the root struct name: "PlaceOrderRequest.items[0].quantity" -> "items[0].quantity"
func validationFieldPath(e validator.FieldError) string {
	if _, path, ok := strings.Cut(e.Namespace(), "."); ok {
		return path
	}
	return e.Field()
}

var fixedMessages = map[string]string{
	"required": "This field is required",
	"uuid":     "Invalid UUID format",
	"phone":    "Invalid phone number",
	"coupon":   "Coupon codes may only contain letters, digits, - and _",
}

var boundMessages = map[string]string{
	"oneof": "Must be one of: ",
	"gte":   "Must be greater than or equal to ",
	"lte":   "Must be less than or equal to ",
	"gt":    "Must be greater than ",
}

func validationMessage(e validator.FieldError) string {
	if msg, ok := fixedMessages[e.Tag()]; ok {
		return msg
	}
	if prefix, ok := boundMessages[e.Tag()]; ok {
		return prefix + e.Param()
	}

	lengthy := e.Kind() == reflect.String || e.Kind() == reflect.Slice
	switch {
	case e.Tag() == "min" && lengthy:
		return "Must have at least " + e.Param() + " entries or characters"
	case e.Tag() == "min":
		return "Must be at least " + e.Param()
	case e.Tag() == "max" && lengthy:
		return "Must have at most " + e.Param() + " entries or characters"
	case e.Tag() == "max":
		return "Must be at most " + e.Param()
	}
	return "Invalid value"
}
