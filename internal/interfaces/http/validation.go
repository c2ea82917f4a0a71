package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/inventario-ledger-api/internal/domain/entity"
)

var productCodePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Validator envuelve validator/v10 con las reglas propias del inventario.
type Validator struct {
	v *validator.Validate
}

// NewValidator registra product_code y movement_type y usa el nombre JSON de cada campo.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("product_code", func(fl validator.FieldLevel) bool {
		return productCodePattern.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	_ = v.RegisterValidation("movement_type", func(fl validator.FieldLevel) bool {
		return entity.MovementType(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// ValidationError fallo de validación con el detalle por campo.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, m := range e.Fields {
		parts = append(parts, f+": "+m)
	}
	sort.Strings(parts)
	return "datos inválidos: " + strings.Join(parts, "; ")
}

// Struct valida s y devuelve *ValidationError si algún campo falla.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return err
	}
	fields := make(map[string]string, len(ves))
	for _, fe := range ves {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe ser al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe ser como máximo %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", fe.Param())
	case "product_code":
		return "solo letras, números, guion y guion bajo"
	case "movement_type":
		return "debe ser in, out o adjustment"
	default:
		return fmt.Sprintf("falló la regla %s", fe.Tag())
	}
}
