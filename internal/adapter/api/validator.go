package api

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"campusmarket/internal/domain/entity"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports field errors by their json names and knows the
// "price" tag for currency amounts and "notblank" for whitespace-only text.
func NewValidator() *CustomValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("price", func(fl validator.FieldLevel) bool {
		_, ok := entity.ParsePrice(fl.Field().String())
		return ok
	})

	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
