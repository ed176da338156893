package api

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"cropcast.app/pkg/validation"
)

// RegisterValidators installs the coordinate validators and field naming on gin's default validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return registerValidators(v)
}

func registerValidators(v *validator.Validate) error {
	v.RegisterTagNameFunc(fieldName)

	if err := v.RegisterValidation("latitude", validateLatitude); err != nil {
		return err
	}
	return v.RegisterValidation("longitude", validateLongitude)
}

func validateLatitude(fl validator.FieldLevel) bool {
	f, ok := floatField(fl.Field())
	return ok && validation.IsValidLatitude(f)
}

func validateLongitude(fl validator.FieldLevel) bool {
	f, ok := floatField(fl.Field())
	return ok && validation.IsValidLongitude(f)
}

func floatField(field reflect.Value) (float64, bool) {
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float(), true
	default:
		return 0, false
	}
}

// fieldName reports json or form names in validation errors instead of Go field names
func fieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}
