package utils

import "math"

// Round округляет число до целых денежных единиц
func Round(value float64) float64 {
	return math.Round(value)
}

// Round2 округляет число до 2 знаков после запятой
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// ClampZero возвращает 0 для отрицательных значений
func ClampZero(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}
