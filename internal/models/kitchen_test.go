// ABOUTME: Tests for scaling and unit conversion helpers.
// ABOUTME: Checks numeric results and error classification.

package models

import (
	"errors"
	"math"
	"testing"
)

func TestConvertUnitVolume(t *testing.T) {
	got, err := ConvertUnit(1, "cup", "ml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-236.588) > 0.001 {
		t.Errorf("expected 236.588, got %f", got)
	}
}

func TestConvertUnitWeight(t *testing.T) {
	got, err := ConvertUnit(2, "KG", " g ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2000 {
		t.Errorf("expected 2000, got %f", got)
	}
}

func TestConvertUnitErrors(t *testing.T) {
	if _, err := ConvertUnit(1, "cup", "g"); !errors.Is(err, ErrIncompatibleUnits) {
		t.Errorf("expected incompatible units, got %v", err)
	}
	if _, err := ConvertUnit(1, "pinch", "g"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected unknown unit, got %v", err)
	}
	if _, err := ConvertUnit(1, "g", "pinch"); !errors.Is(err, ErrUnknownUnit) {
		t.Errorf("expected unknown unit, got %v", err)
	}
}

func TestTemperature(t *testing.T) {
	if got := CelsiusToFahrenheit(250); got != 482 {
		t.Errorf("expected 482, got %f", got)
	}
	if got := FahrenheitToCelsius(212); got != 100 {
		t.Errorf("expected 100, got %f", got)
	}
}

func TestScaleIngredients(t *testing.T) {
	in := []Ingredient{
		{Name: "flour", Amount: "500", Unit: "g"},
		{Name: "yeast", Amount: "1/2", Unit: "tsp"},
		{Name: "salt", Amount: "a pinch"},
	}

	got, err := ScaleIngredients(in, 2, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Amount != "750" {
		t.Errorf("expected 750, got %q", got[0].Amount)
	}
	if got[1].Amount != "0.75" {
		t.Errorf("expected 0.75, got %q", got[1].Amount)
	}
	if got[2].Amount != "a pinch" {
		t.Errorf("expected non-numeric amount untouched, got %q", got[2].Amount)
	}
	if in[0].Amount != "500" {
		t.Error("input was modified")
	}
}

func TestScaleIngredientsRejectsZeroServings(t *testing.T) {
	if _, err := ScaleIngredients(nil, 0, 2); err == nil {
		t.Error("expected error for zero servings")
	}
}
