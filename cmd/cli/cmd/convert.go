// convert command

package cmd

import (
	"github.com/spf13/cobra"

	"vfx-cost/core/interchange"
	"vfx-cost/core/ui"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <in> <out>",
	Short: "Convert a project file between JSON, YAML and HCL",
	Long: `Read a project file and write it in another interchange format.
Both formats follow the file extensions (.json, .yaml/.yml, .hcl).

Examples:
  vfx-cost convert trailer.json trailer.hcl
  vfx-cost convert trailer.hcl trailer.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenes, err := interchange.ReadFile(args[0])
		if err != nil {
			return err
		}
		if err := saveProject(args[1], scenes); err != nil {
			return err
		}

		w := ui.NewWriter(cmd.OutOrStdout(), noColor)
		w.Success("Converted %d scenes: %s → %s", len(scenes), args[0], args[1])
		return nil
	},
}
