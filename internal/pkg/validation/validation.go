package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	apperror "gostore/internal/errors"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Usa o nome do campo JSON nas mensagens de erro.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Struct valida o payload pelas tags `validate` e devolve um apperror.ValidationError
// listando os campos inválidos.
func Struct(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.NewInternalError("falha ao validar payload", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return apperror.NewValidationError(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s é obrigatório", fe.Field())
	case "email":
		return fmt.Sprintf("%s deve ser um e-mail válido", fe.Field())
	case "len":
		return fmt.Sprintf("%s deve ter %s caracteres", fe.Field(), fe.Param())
	case "min", "gte", "gt":
		return fmt.Sprintf("%s deve ser no mínimo %s", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s deve ser no máximo %s", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s deve ser um de [%s]", fe.Field(), fe.Param())
	case "number", "numeric":
		return fmt.Sprintf("%s deve conter apenas dígitos", fe.Field())
	default:
		return fmt.Sprintf("%s é inválido (%s)", fe.Field(), fe.Tag())
	}
}
