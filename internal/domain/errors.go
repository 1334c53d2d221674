package domain

import "errors"

// Виды ошибок ядра. Конкретные ошибки оборачивают их через fmt.Errorf("%w: ..."),
// вызывающая сторона различает их через errors.Is.
var (
	// ErrValidation - некорректный или вне диапазона ввод, обнаружен до изменения состояния
	ErrValidation = errors.New("validation error")

	// ErrNotFound - запрошенный кредит, ценная бумага или транзакция отсутствует
	ErrNotFound = errors.New("not found")

	// ErrInvalidState - операция недопустима в текущем статусе
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidAmount - платеж превышает остаток или не положителен
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrConflict - конкурентная запись изменила документ между чтением и записью
	ErrConflict = errors.New("persistence conflict")

	// ErrPersistence - хранилище недоступно или вернуло ошибку
	ErrPersistence = errors.New("persistence failure")
)

// Kind возвращает метку вида ошибки для метрик и логов
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	default:
		return "internal"
	}
}
