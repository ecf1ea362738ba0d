package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/flashforge/internal/ui/pretty"
	"github.com/yaklabco/flashforge/pkg/card"
)

// strategyJSON is one strategy in JSON output.
type strategyJSON struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func newStrategiesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "strategies",
		Short: "List parsing strategies",
		Long:  `List every parsing strategy with a one-line description of how it turns text into cards.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch format {
			case "json":
				return printStrategiesJSON(cmd)
			case "text", "table":
				printStrategiesTable(cmd)
				return nil
			default:
				return fmt.Errorf("%w: unknown format %q; valid formats: text, json", ErrUsage, format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func printStrategiesTable(cmd *cobra.Command) {
	strategies := card.Strategies()
	rows := make([][]string, 0, len(strategies))
	for _, s := range strategies {
		rows = append(rows, []string{s.String(), s.Description()})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, pretty.RenderTable(
		[]string{"STRATEGY", "DESCRIPTION"},
		rows,
		[]pretty.Align{pretty.AlignLeft, pretty.AlignLeft},
		0,
	))
}

func printStrategiesJSON(cmd *cobra.Command) error {
	strategies := card.Strategies()
	list := make([]strategyJSON, 0, len(strategies))
	for _, s := range strategies {
		list = append(list, strategyJSON{Name: s.String(), Description: s.Description()})
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(list); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
