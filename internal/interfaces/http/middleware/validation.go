package middleware

import (
	"reflect"
	"strings"

	"github.com/boardhub/backend/internal/domain/tree"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator configures gin's validator: field names in error messages
// come from the json/form tags, and the nodecode tag enforces the tree code
// rules on request DTOs before they reach the domain layer.
func SetupValidator() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})

	_ = v.RegisterValidation("nodecode", func(fl validator.FieldLevel) bool {
		return tree.ValidateCode(fl.Field().String()) == nil
	})
}
