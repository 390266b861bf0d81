package validator

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("sortspec", validateSortSpec)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

var sortColumns = map[string]bool{"name": true, "location": true, "size": true, "status": true}

// validateSortSpec проверяет строку вида "name:asc,status:desc"
func validateSortSpec(fl validator.FieldLevel) bool {
	raw := strings.TrimSpace(fl.Field().String())
	if raw == "" {
		return true
	}
	for _, part := range strings.Split(raw, ",") {
		column, direction, _ := strings.Cut(strings.TrimSpace(part), ":")
		if !sortColumns[strings.ToLower(column)] {
			return false
		}
		switch strings.ToLower(direction) {
		case "", "asc", "desc":
		default:
			return false
		}
	}
	return true
}
