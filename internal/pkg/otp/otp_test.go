package otp

import (
	"testing"
)

func TestNumericGenerate(t *testing.T) {
	t.Run("DefaultLength", func(t *testing.T) {
		gen := NewNumeric(0)

		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != DefaultLength {
			t.Fatalf("expected %d digits, got %q", DefaultLength, code)
		}
	})

	t.Run("DigitsOnly", func(t *testing.T) {
		gen := NewNumeric(6)

		for range 100 {
			code, err := gen.Generate()
			if err != nil {
				t.Fatalf("generate: %v", err)
			}
			for _, r := range code {
				if r < '0' || r > '9' {
					t.Fatalf("expected only digits, got %q", code)
				}
			}
		}
	})

	t.Run("CustomLength", func(t *testing.T) {
		gen := NewNumeric(8)

		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(code) != 8 {
			t.Fatalf("expected 8 digits, got %q", code)
		}
	})
}
