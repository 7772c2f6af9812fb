// scene commands

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vfx-cost/core/interchange"
	"vfx-cost/core/output"
	"vfx-cost/core/project"
	"vfx-cost/core/types"
	"vfx-cost/core/ui"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/logging"
)

var (
	sceneName        string
	sceneDescription string
	sceneCount       int
)

// sceneCmd edits the scene list of a project file in place
var sceneCmd = &cobra.Command{
	Use:   "scene",
	Short: "Create and edit project files",
	Long: `Edit the ordered scene list of a project file in place. The file
format follows the extension (.json, .yaml/.yml, .hcl).

Examples:
  vfx-cost scene new trailer.json --scenes 3
  vfx-cost scene add trailer.json --name "Car chase"
  vfx-cost scene set trailer.json <id> basePrice=12000 roto=Hard fps=60
  vfx-cost scene list trailer.json`,
}

var sceneNewCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Create a project file with default scenes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return errors.Newf(errors.TypeInput, "%s already exists", path)
		}

		p := project.New()
		for i := 1; i < sceneCount; i++ {
			p.AddScene()
		}
		if err := saveProject(path, p.Scenes()); err != nil {
			return err
		}
		ui.NewWriter(cmd.OutOrStdout(), noColor).Success("Created %s with %d scenes", path, p.Len())
		return nil
	},
}

var sceneAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Append a default scene",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProject(cmd, args[0], func(p *project.Project) (string, error) {
			s := p.AddScene()
			if sceneName != "" || sceneDescription != "" {
				name := sceneName
				if name == "" {
					name = s.Name
				}
				if err := p.RenameScene(s.ID, name, sceneDescription); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("Added scene %s", s.ID), nil
		})
	},
}

var sceneRemoveCmd = &cobra.Command{
	Use:     "rm <file> <id>",
	Aliases: []string{"delete"},
	Short:   "Delete a scene",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProject(cmd, args[0], func(p *project.Project) (string, error) {
			if err := p.DeleteScene(args[1]); err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted scene %s", args[1]), nil
		})
	},
}

var sceneRenameCmd = &cobra.Command{
	Use:   "rename <file> <id> <name>",
	Short: "Rename a scene",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProject(cmd, args[0], func(p *project.Project) (string, error) {
			s, err := p.Scene(args[1])
			if err != nil {
				return "", err
			}
			description := s.Description
			if cmd.Flags().Changed("description") {
				description = sceneDescription
			}
			if err := p.RenameScene(s.ID, args[2], description); err != nil {
				return "", err
			}
			return fmt.Sprintf("Renamed scene %s", s.ID), nil
		})
	},
}

var sceneSetCmd = &cobra.Command{
	Use:   "set <file> <id> <key=value>...",
	Short: "Change fields of a scene's shot configuration",
	Long: `Change fields of a scene. Keys are the configuration field names:
basePrice, duration, resolution, fps, brief, onSceneManagement,
allowOnReel, and every driver (roto, cleanup, cameraTracking, ...).`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return editProject(cmd, args[0], func(p *project.Project) (string, error) {
			s, err := p.Scene(args[1])
			if err != nil {
				return "", err
			}
			shot := s.Data
			for _, kv := range args[2:] {
				key, value, ok := strings.Cut(kv, "=")
				if !ok {
					return "", errors.Newf(errors.TypeInput, "expected key=value, got %q", kv)
				}
				if err := setField(&shot, strings.TrimSpace(key), strings.TrimSpace(value)); err != nil {
					return "", err
				}
			}
			if invalid := shot.InvalidFields(); len(invalid) > 0 {
				return "", errors.Newf(errors.TypeInput, "unrecognized values for %s", strings.Join(invalid, ", "))
			}
			if err := p.UpdateScene(s.ID, shot); err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated scene %s", s.ID), nil
		})
	},
}

var sceneListCmd = &cobra.Command{
	Use:     "list <file>",
	Aliases: []string{"ls"},
	Short:   "List scenes with their totals",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scenes, err := interchange.ReadFile(args[0])
		if err != nil {
			return err
		}

		engine := newEngine()
		w := ui.NewWriter(cmd.OutOrStdout(), noColor)
		table := w.NewTable("ID", "Name", "Duration", "Total").AlignRight(2).AlignRight(3)
		for _, s := range scenes {
			total := "invalid"
			if b, err := engine.Compute(s.Data); err == nil {
				total = output.FormatMoney(b.Total, b.Currency)
			} else {
				logging.Warn("scene not priced", zap.String("scene_id", s.ID), zap.Error(err))
			}
			table.AddRow(s.ID, s.Name, output.FormatSeconds(types.Amount(s.Data.Duration)), total)
		}
		table.Render()
		return nil
	},
}

func init() {
	sceneCmd.AddCommand(sceneNewCmd)
	sceneCmd.AddCommand(sceneAddCmd)
	sceneCmd.AddCommand(sceneRemoveCmd)
	sceneCmd.AddCommand(sceneRenameCmd)
	sceneCmd.AddCommand(sceneSetCmd)
	sceneCmd.AddCommand(sceneListCmd)

	sceneNewCmd.Flags().IntVar(&sceneCount, "scenes", 1, "number of scenes")
	sceneAddCmd.Flags().StringVar(&sceneName, "name", "", "scene name")
	sceneAddCmd.Flags().StringVar(&sceneDescription, "description", "", "scene description")
	sceneRenameCmd.Flags().StringVar(&sceneDescription, "description", "", "scene description")
}

// editProject loads a project file, applies edit and writes the file back
func editProject(cmd *cobra.Command, path string, edit func(*project.Project) (string, error)) error {
	scenes, err := interchange.ReadFile(path)
	if err != nil {
		return err
	}
	p, err := project.FromScenes(scenes)
	if err != nil {
		return err
	}

	msg, err := edit(p)
	if err != nil {
		return err
	}
	if err := saveProject(path, p.Scenes()); err != nil {
		return err
	}
	ui.NewWriter(cmd.OutOrStdout(), noColor).Success("%s", msg)
	return nil
}

func saveProject(path string, scenes []types.Scene) error {
	if err := interchange.WriteFile(path, scenes); err != nil {
		return err
	}
	logging.Info("project written", zap.String("path", path), zap.Int("scenes", len(scenes)))
	return nil
}

// setField assigns one configuration field by its key
func setField(shot *types.ShotConfiguration, key, value string) error {
	switch key {
	case "basePrice":
		shot.BasePrice = types.ParseAmount(value)
	case "duration":
		shot.Duration = types.ParseAmount(value)
	case "resolution":
		shot.Resolution = types.Resolution(value)
	case "fps":
		shot.FrameRate = types.FrameRate(value)
	case "brief":
		shot.Brief = types.Brief(value)
	case "onSceneManagement":
		shot.OnSceneSupervision = types.Toggle(value)
	case "allowOnReel":
		shot.AllowShowreelUsage = types.Toggle(value)
	default:
		d := types.Driver(key)
		if _, ok := d.Info(); !ok {
			return errors.Newf(errors.TypeInput, "unknown field %q", key)
		}
		*shot = shot.WithLevel(d, types.Complexity(value))
	}
	return nil
}
