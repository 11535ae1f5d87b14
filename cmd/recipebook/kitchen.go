// ABOUTME: Kitchen helper commands: ingredient scaling and unit conversion.
// ABOUTME: Scaling reads a stored recipe; conversions are pure arithmetic.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/recipebook/internal/models"
)

var scaleCmd = &cobra.Command{
	Use:         "scale <id>",
	Short:       "Print a recipe's ingredients scaled to a serving count",
	Annotations: noStart,
	Args:        cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := lookupRecipe(args[0])
		if err != nil {
			return err
		}
		servings, _ := cmd.Flags().GetInt("servings")
		if r.Servings <= 0 {
			return fmt.Errorf("recipe %d has no serving count to scale from", r.ID)
		}

		scaled, err := models.ScaleIngredients(r.Ingredients, r.Servings, servings)
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "%s (%d → %d servings)\n", r.Title, r.Servings, servings)
		for _, ing := range scaled {
			fmt.Fprintf(out(cmd), "  %s\n", strings.TrimSpace(strings.Join([]string{ing.Amount, ing.Unit, ing.Name}, " ")))
		}
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:         "convert <value> <from> <to>",
	Short:       "Convert between kitchen units (g, kg, oz, lb, ml, l, tsp, tbsp, cup, fl oz)",
	Annotations: noStart,
	Args:        cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q", args[0])
		}
		result, err := models.ConvertUnit(value, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "%s %s = %s %s\n",
			strconv.FormatFloat(value, 'f', -1, 64), args[1],
			strconv.FormatFloat(result, 'f', 2, 64), args[2])
		return nil
	},
}

var tempCmd = &cobra.Command{
	Use:         "temp <value> <c|f>",
	Short:       "Convert an oven temperature between Celsius and Fahrenheit",
	Annotations: noStart,
	Args:        cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid value %q", args[0])
		}
		switch strings.ToLower(args[1]) {
		case "c":
			fmt.Fprintf(out(cmd), "%g°C = %g°F\n", value, models.CelsiusToFahrenheit(value))
		case "f":
			fmt.Fprintf(out(cmd), "%g°F = %g°C\n", value, models.FahrenheitToCelsius(value))
		default:
			return fmt.Errorf("unit must be c or f, got %q", args[1])
		}
		return nil
	},
}

func init() {
	scaleCmd.Flags().Int("servings", 0, "target serving count")
	_ = scaleCmd.MarkFlagRequired("servings")
	rootCmd.AddCommand(scaleCmd, convertCmd, tempCmd)
}
