package validators

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/DevSlashRichie/coinme/internal/config"
	"github.com/DevSlashRichie/coinme/internal/domain"
)

func TestValidators(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name      string
		check     func() error
		wantError bool
	}{
		{"valid principal", func() error { return CheckPrincipal(cfg, 1000000) }, false},
		{"invalid principal zero", func() error { return CheckPrincipal(cfg, 0) }, true},
		{"invalid principal negative", func() error { return CheckPrincipal(cfg, -1000) }, true},
		{"invalid principal above limit", func() error { return CheckPrincipal(cfg, 2e9) }, true},
		{"invalid principal NaN", func() error { return CheckPrincipal(cfg, math.NaN()) }, true},
		{"valid rate", func() error { return CheckRate(0.12) }, false},
		{"valid zero rate", func() error { return CheckRate(0) }, false},
		{"valid full rate", func() error { return CheckRate(1) }, false},
		{"invalid rate percent", func() error { return CheckRate(12) }, true},
		{"invalid rate negative", func() error { return CheckRate(-0.01) }, true},
		{"valid months", func() error { return CheckTermMonths(cfg, 12) }, false},
		{"invalid months zero", func() error { return CheckTermMonths(cfg, 0) }, true},
		{"invalid months above limit", func() error { return CheckTermMonths(cfg, 601) }, true},
		{"valid amount", func() error { return CheckAmount("amount", 0) }, false},
		{"invalid amount", func() error { return CheckAmount("amount", -1) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

type sample struct {
	Name  string  `validate:"required"`
	Cost  float64 `validate:"gte=1"`
	Kind  string  `validate:"oneof=a b"`
	Count int     `validate:"gt=0"`
}

func TestStruct(t *testing.T) {
	if err := Struct(sample{Name: "x", Cost: 1, Kind: "a", Count: 1}); err != nil {
		t.Fatalf("Struct() error = %v", err)
	}

	err := Struct(sample{Cost: 0.5, Kind: "c"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	for _, want := range []string{"Name is required", "Cost must be >= 1", "Kind must be one of [a b]", "Count must be > 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err.Error(), want)
		}
	}
}
