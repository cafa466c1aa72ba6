package scoring

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"cod-fraud-system/internal/models"

	"github.com/go-playground/validator/v10"
)

// ValidationError ошибка валидации заказа с детализацией по полям
type ValidationError struct {
	Errors map[string]string `json:"errors"`
}

func (v *ValidationError) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, fmt.Sprintf("%s: %s", field, v.Errors[field]))
	}
	return strings.Join(messages, "; ")
}

// HasField возвращает true, если поле не прошло валидацию
func (v *ValidationError) HasField(field string) bool {
	_, ok := v.Errors[field]
	return ok
}

func newValidator() *validator.Validate {
	v := validator.New()
	// В ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateOrder проверяет обязательные для оценки поля заказа
func ValidateOrder(v *validator.Validate, order *models.Order) error {
	if order == nil {
		return &ValidationError{Errors: map[string]string{"order": "order is required"}}
	}

	err := v.Struct(order)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	result := &ValidationError{Errors: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		result.Errors[fe.Field()] = fieldMessage(fe)
	}
	return result
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
