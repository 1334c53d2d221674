package validators

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DevSlashRichie/coinme/internal/config"
	"github.com/DevSlashRichie/coinme/internal/domain"
	"github.com/DevSlashRichie/coinme/pkg/utils"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct проверяет теги validate у входной структуры
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be > %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s check", field, fe.Tag())
	}
}

// ValidatePositiveNumber проверяет, что число конечное и в допустимом диапазоне
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return fmt.Errorf("%w: %s is not a finite number", domain.ErrValidation, name)
	}
	if value < minInclusive {
		return fmt.Errorf("%w: %s must be >= %g", domain.ErrValidation, name, minInclusive)
	}
	if value > maxInclusive {
		return fmt.Errorf("%w: %s is too large (> %g)", domain.ErrValidation, name, maxInclusive)
	}
	return nil
}

// ValidateIntRange проверяет, что целое число в допустимом диапазоне
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return fmt.Errorf("%w: %s must be within [%d; %d]", domain.ErrValidation, name, minInclusive, maxInclusive)
	}
	return nil
}

// CheckPrincipal проверяет сумму кредита
func CheckPrincipal(cfg *config.Config, principal float64) error {
	if principal <= 0 {
		return fmt.Errorf("%w: principalAmount must be positive", domain.ErrValidation)
	}
	return ValidatePositiveNumber("principalAmount", principal, 0, cfg.MaxPrincipal)
}

// CheckRate проверяет годовую ставку в долях: от 0 до 1
func CheckRate(rate float64) error {
	return ValidatePositiveNumber("interestRate", rate, 0, 1)
}

// CheckTermMonths проверяет срок кредита в месяцах
func CheckTermMonths(cfg *config.Config, months int) error {
	return ValidateIntRange("termMonths", months, 1, cfg.MaxTermMonths)
}

// CheckAmount проверяет неотрицательную денежную сумму
func CheckAmount(name string, amount float64) error {
	if !utils.IsFinite(amount) || amount < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", domain.ErrValidation, name)
	}
	return nil
}
