// ABOUTME: Kitchen helper calculations: ingredient scaling and unit conversion.
// ABOUTME: Volume units convert via millilitres, weight units via grams.

package models

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrUnknownUnit = errors.New("unknown unit")
var ErrIncompatibleUnits = errors.New("units measure different quantities")

var volumeUnits = map[string]float64{
	"ml":    1,
	"l":     1000,
	"tsp":   4.92892,
	"tbsp":  14.7868,
	"fl oz": 29.5735,
	"cup":   236.588,
}

var weightUnits = map[string]float64{
	"g":  1,
	"kg": 1000,
	"oz": 28.3495,
	"lb": 453.592,
}

// ConvertUnit converts value between two volume units or two weight units.
func ConvertUnit(value float64, from, to string) (float64, error) {
	from = strings.ToLower(strings.TrimSpace(from))
	to = strings.ToLower(strings.TrimSpace(to))

	for _, table := range []map[string]float64{volumeUnits, weightUnits} {
		f, okFrom := table[from]
		t, okTo := table[to]
		switch {
		case okFrom && okTo:
			return value * f / t, nil
		case okFrom || okTo:
			if _, known := lookupUnit(from); !known {
				return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, from)
			}
			if _, known := lookupUnit(to); !known {
				return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, to)
			}
			return 0, fmt.Errorf("%w: %s -> %s", ErrIncompatibleUnits, from, to)
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownUnit, from)
}

func lookupUnit(u string) (float64, bool) {
	if f, ok := volumeUnits[u]; ok {
		return f, true
	}
	f, ok := weightUnits[u]
	return f, ok
}

func CelsiusToFahrenheit(c float64) float64 {
	return math.Round(c*9/5 + 32)
}

func FahrenheitToCelsius(f float64) float64 {
	return math.Round((f - 32) * 5 / 9)
}

// ScaleIngredients rescales amounts from one serving count to another.
// Amounts that are not numbers or simple fractions are left untouched.
func ScaleIngredients(list []Ingredient, fromServings, toServings int) ([]Ingredient, error) {
	if fromServings <= 0 || toServings <= 0 {
		return nil, errors.New("servings must be positive")
	}
	factor := float64(toServings) / float64(fromServings)
	out := make([]Ingredient, len(list))
	for i, ing := range list {
		if amount, ok := parseAmount(ing.Amount); ok {
			ing.Amount = formatAmount(amount * factor)
		}
		out[i] = ing
	}
	return out, nil
}

func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if num, den, found := strings.Cut(s, "/"); found {
		n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
		d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
