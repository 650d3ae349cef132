package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/footprint/internal/config"
	"github.com/rshade/footprint/internal/tui"
)

// errNotTerminal is returned when the interactive form cannot take over the
// terminal.
var errNotTerminal = errors.New("interactive mode requires a terminal; use 'footprint calculate' instead")

// stdioIsTerminal reports whether stdin and stdout are both terminals.
//
//nolint:gochecknoglobals // Swapped in tests.
var stdioIsTerminal = func() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// runProgram runs a Bubble Tea program and returns its final model.
//
//nolint:gochecknoglobals // Swapped in tests.
var runProgram = func(cmd *cobra.Command, m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	return p.Run()
}

// NewInteractiveCmd creates the interactive command, a terminal form that
// recalculates on demand and prints the last result on exit.
func NewInteractiveCmd() *cobra.Command {
	var (
		factorsFile string
		rounding    RoundingFlag
	)

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"tui"},
		Short:   "Fill in the calculator form in the terminal",
		Long: `Opens an interactive form with region, diet and the four activity
quantities prefilled from the configuration.

Keys: up/down to move, left/right to change region or diet, enter to edit a
number or press Calculate, c to recalculate, q to quit. The last result is
printed when the form closes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeInteractive(cmd, factorsFile, rounding)
		},
	}

	cmd.Flags().StringVar(&factorsFile, "factors", "", "emission factor table file (.yaml or .json)")
	cmd.Flags().Var(&rounding, "rounding", "rounding mode: half-up or half-even (default from config)")

	return cmd
}

func executeInteractive(cmd *cobra.Command, factorsFile string, rounding RoundingFlag) error {
	if !stdioIsTerminal() {
		return errNotTerminal
	}

	ctx := cmd.Context()
	calc, err := newCalculator(ctx, calculatorOptions{FactorsFile: factorsFile, Rounding: rounding.Value})
	if err != nil {
		return err
	}
	initial, err := configuredActivity()
	if err != nil {
		return err
	}

	model := tui.NewCalculatorModel(ctx, calc.Regions(), initial, calc.CalculateContext)
	final, err := runProgram(cmd, model)
	if err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}

	m, ok := final.(*tui.CalculatorModel)
	if !ok {
		return nil
	}
	fp, ok := m.GetFootprint()
	if !ok {
		return nil
	}
	return renderFootprint(cmd.OutOrStdout(), config.FormatTable, fp)
}
