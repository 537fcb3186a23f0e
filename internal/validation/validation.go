package validation

import (
	"encoding/json"
	"errors"
	"mime"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fhuszti/lsl-go/internal/format"
	msuuid "github.com/fhuszti/lsl-go/internal/uuid"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})

	// validate our UUID wrapper through its canonical string form
	validate.RegisterCustomTypeFunc(func(v reflect.Value) interface{} {
		if id, ok := v.Interface().(msuuid.UUID); ok {
			return id.String()
		}
		return nil
	}, msuuid.UUID{})

	_ = validate.RegisterValidation("mimetype", validateMimeType)
	_ = validate.RegisterValidation("audiofile", validateAudioFile)
}

// validateMimeType accepts a type/subtype media type, parameters allowed.
func validateMimeType(fl validator.FieldLevel) bool {
	mediaType, _, err := mime.ParseMediaType(fl.Field().String())
	if err != nil {
		return false
	}
	typ, sub, ok := strings.Cut(mediaType, "/")
	return ok && typ != "" && sub != ""
}

func validateAudioFile(fl validator.FieldLevel) bool {
	return format.IsAllowedExtension(fl.Field().String())
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ErrorsToMap maps each failing field to the tag it failed on.
func ErrorsToMap(validationErrs error) map[string]string {
	errsMap := make(map[string]string)
	var fieldErrs validator.ValidationErrors
	if !errors.As(validationErrs, &fieldErrs) {
		return errsMap
	}
	for _, fieldErr := range fieldErrs {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}
	return errsMap
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsJson, err := json.Marshal(ErrorsToMap(validationErrs))
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
