// Package validation содержит проверки входных данных, выполняемые до
// обращения к бэкенду.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalid оборачивает все ошибки валидации.
var ErrInvalid = errors.New("invalid input")

// Validator проверяет структуры запросов и отдельные значения.
type Validator struct {
	v *validator.Validate
}

// New создаёт валидатор с дополнительным тегом notblank.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// Ошибки регистрации возможны только при пустом имени тега.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{v: v}
}

// Struct проверяет структуру по тегам validate.
func (v *Validator) Struct(s any) error {
	return translate("", v.v.Struct(s))
}

// Var проверяет отдельное значение; name используется в тексте ошибки.
func (v *Validator) Var(name string, value any, tag string) error {
	return translate(name, v.v.Var(value, tag))
}

// PublicID проверяет, что публичный идентификатор не пустой.
func (v *Validator) PublicID(name, id string) error {
	return v.Var(name, id, "notblank")
}

// PositiveID проверяет, что числовой идентификатор больше нуля.
func (v *Validator) PositiveID(name string, id int64) error {
	return v.Var(name, id, "gt=0")
}

func translate(name string, err error) error {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = name
		}
		msgs = append(msgs, field+": "+describe(fe))
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "email":
		return "must be a valid email"
	}
	return "failed on " + fe.Tag()
}
