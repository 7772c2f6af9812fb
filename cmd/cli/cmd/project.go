// project command

package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"vfx-cost/core/interchange"
	"vfx-cost/core/output"
	"vfx-cost/core/pricing"
	"vfx-cost/core/project"
	"vfx-cost/internal/logging"
)

var (
	projectFormat  string
	projectDetails bool
	projectTitle   string
	projectJobs    int
)

// projectCmd represents the project command
var projectCmd = &cobra.Command{
	Use:   "project <file>...",
	Short: "Estimate every scene of one or more project files",
	Long: `Import project files (JSON, YAML or HCL, by extension), price every
scene and print the per-scene breakdowns with the project total.

Several files are read and priced concurrently and reported as one project;
scene names are prefixed with their file name.

Examples:
  vfx-cost project trailer.json
  vfx-cost project --format html --title "Season 2" ep1.json ep2.yaml > estimate.html`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProject,
}

func init() {
	projectCmd.Flags().StringVarP(&projectFormat, "format", "f", "", "output format (cli, json, html, markdown)")
	projectCmd.Flags().BoolVarP(&projectDetails, "details", "d", false, "list every driver, including zero lines")
	projectCmd.Flags().StringVar(&projectTitle, "title", "", "report title")
	projectCmd.Flags().IntVarP(&projectJobs, "jobs", "j", 4, "files priced in parallel")
}

func runProject(cmd *cobra.Command, args []string) error {
	format, err := reportFormat(projectFormat)
	if err != nil {
		return err
	}

	est, err := estimateFiles(cmd, newEngine(), args)
	if err != nil {
		return err
	}

	opts := reportOptions(projectTitle, projectDetails)
	return output.Render(cmd.OutOrStdout(), format, output.NewProjectReport(est, opts), opts)
}

// estimateFiles prices each file concurrently and merges the results in
// argument order
func estimateFiles(cmd *cobra.Command, engine *pricing.Engine, paths []string) (*project.Estimate, error) {
	estimates := make([]*project.Estimate, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	if projectJobs > 0 {
		g.SetLimit(projectJobs)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scenes, err := interchange.ReadFile(path)
			if err != nil {
				return err
			}
			est, err := project.EstimateScenes(engine, scenes)
			if err != nil {
				return err
			}
			estimates[i] = est
			logging.Debug("file estimated",
				zap.String("path", path),
				zap.Int("scenes", len(scenes)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(estimates) == 1 {
		return estimates[0], nil
	}

	merged := &project.Estimate{Currency: estimates[0].Currency}
	for i, est := range estimates {
		prefix := filepath.Base(paths[i]) + ": "
		for _, se := range est.Scenes {
			se.Scene.Name = prefix + se.Scene.Name
			merged.Scenes = append(merged.Scenes, se)
		}
		merged.Total = merged.Total.Add(est.Total)
	}
	return merged, nil
}
