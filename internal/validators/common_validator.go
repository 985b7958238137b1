package validators

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validation functions
	validate.RegisterValidation("object_id", validateObjectID)
	validate.RegisterValidation("phone_number", validatePhoneNumber)
	validate.RegisterValidation("ifsc_code", validateIFSCCode)
	validate.RegisterValidation("upi_id", validateUPIID)
	validate.RegisterValidation("vehicle_category", validateVehicleCategory)
	validate.RegisterValidation("registration_number", validateRegistrationNumber)
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var messages []string
	for _, err := range v {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

// ValidateStruct validates a struct and returns detailed errors
func ValidateStruct(s interface{}) ValidationErrors {
	var validationErrors ValidationErrors

	err := validate.Struct(s)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationError := ValidationError{
				Field:   err.Field(),
				Tag:     err.Tag(),
				Value:   fmt.Sprintf("%v", err.Value()),
				Message: getErrorMessage(err),
			}
			validationErrors = append(validationErrors, validationError)
		}
	}

	return validationErrors
}

func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", err.Field())
	case "email":
		return "Invalid email format"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param())
	case "object_id":
		return "Invalid ID format"
	case "phone_number":
		return "Invalid phone number format"
	case "ifsc_code":
		return "Invalid IFSC code"
	case "upi_id":
		return "Invalid UPI id"
	case "vehicle_category":
		return "Category must be one of bike, car, scooty"
	case "registration_number":
		return "Invalid registration number"
	default:
		return fmt.Sprintf("%s is invalid", err.Field())
	}
}

func validateObjectID(fl validator.FieldLevel) bool {
	_, err := primitive.ObjectIDFromHex(fl.Field().String())
	return err == nil
}

var phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{7,14}$`)

func validatePhoneNumber(fl validator.FieldLevel) bool {
	return phoneRegex.MatchString(fl.Field().String())
}

// IFSC: four letters, a zero, six alphanumerics.
var ifscRegex = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)

func validateIFSCCode(fl validator.FieldLevel) bool {
	return ifscRegex.MatchString(strings.ToUpper(fl.Field().String()))
}

var upiRegex = regexp.MustCompile(`^[\w.\-]{2,}@[a-zA-Z]{2,}$`)

func validateUPIID(fl validator.FieldLevel) bool {
	return upiRegex.MatchString(fl.Field().String())
}

func validateVehicleCategory(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "bike", "car", "scooty":
		return true
	}
	return false
}

var registrationRegex = regexp.MustCompile(`^[A-Z0-9\- ]{4,15}$`)

func validateRegistrationNumber(fl validator.FieldLevel) bool {
	return registrationRegex.MatchString(strings.ToUpper(fl.Field().String()))
}
