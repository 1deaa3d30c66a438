package utils

import (
	"errors"
	"strings"
	"testing"
)

type rangeInput struct {
	Rate  float64 `validate:"gte=0,lte=15"`
	Years int     `validate:"gte=1,lte=30"`
	Name  string  `validate:"required"`
}

func TestValidatorStruct(t *testing.T) {
	v := NewValidator()

	if err := v.Struct(rangeInput{Rate: 4.5, Years: 25, Name: "lån"}); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	err := v.Struct(rangeInput{Rate: 16, Years: 0})
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("want *ValidationError, got %T", err)
	}
	if len(vErr.Fields) != 3 {
		t.Errorf("Fields: got %d, want 3 (%v)", len(vErr.Fields), vErr.Fields)
	}
	msg := err.Error()
	for _, want := range []string{"invalid input:", "rangeInput.Rate must be <= 15", "rangeInput.Years must be >= 1", "rangeInput.Name is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestValidatorVar(t *testing.T) {
	v := NewValidator()
	if err := v.Var(50.0, "gte=0,lte=100"); err != nil {
		t.Errorf("50 rejected: %v", err)
	}
	if err := v.Var(120.0, "gte=0,lte=100"); err == nil {
		t.Errorf("120 accepted")
	}
}
