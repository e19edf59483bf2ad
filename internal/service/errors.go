package service

import "fmt"

// здесь происходит проверка ошибок бизнес-логики

type BusinessError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (b *BusinessError) Error() string {
	if b.Err != nil {
		return fmt.Sprintf("[%s] %s: %s", b.Code, b.Message, b.Err.Error())
	}
	return fmt.Sprintf("[%s] %s", b.Code, b.Message)
}

func NewNotFound(resource string, id int64) *BusinessError {
	return &BusinessError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s %d not found", resource, id),
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func NewValidationError(field, reason string) *BusinessError {
	return &BusinessError{
		Code:    "VALIDATION_ERROR",
		Message: fmt.Sprintf("invalid value of field '%s': %s", field, reason),
		Details: map[string]any{
			"field":  field,
			"reason": reason,
		},
	}
}

// NewInvalidCredentials намеренно возвращает одну и ту же ошибку без деталей
// для обоих случаев (нет пользователя / неверный пароль), чтобы по ответу
// нельзя было перечислять имена пользователей.
func NewInvalidCredentials() *BusinessError {
	return &BusinessError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid username or password",
	}
}
