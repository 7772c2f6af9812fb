// rates command

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"vfx-cost/core/pricing"
	"vfx-cost/core/style"
	"vfx-cost/core/ui"
)

var ratesJSON bool

// ratesCmd prints the rate card the engine prices with
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the multiplier tables",
	Long: `Print every multiplier table of the configured rate card, including
the frame-rate policy and brief mode in effect, and the chart legend.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		card := newEngine().RateCard()
		if ratesJSON {
			data, err := json.MarshalIndent(card, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}
		printRates(ui.NewWriter(cmd.OutOrStdout(), noColor), card)
		return nil
	},
}

func init() {
	ratesCmd.Flags().BoolVar(&ratesJSON, "json", false, "print the rate card as JSON")
}

func printRates(w *ui.Writer, card *pricing.RateCard) {
	w.Header("Rate Card")
	w.Println("Currency:   %s", card.Currency)
	w.Println("FPS policy: %s", card.FPSPolicy)
	w.Println("Brief mode: %s", card.BriefMode)

	for _, t := range card.Tables() {
		w.Line("")
		w.SubHeader(t.Name)
		table := w.NewTable("Value", "Multiplier").AlignRight(1)
		for _, r := range t.Rates {
			table.AddRow(r.Key, r.Multiplier.String())
		}
		table.Render()
	}

	w.Line("")
	w.SubHeader("Chart")
	legend := w.NewTable("Category", "Colour")
	for _, c := range style.Chart {
		legend.AddStyledRow(ui.Hex(c.Color), c.Name, c.Color)
	}
	legend.Render()
}
