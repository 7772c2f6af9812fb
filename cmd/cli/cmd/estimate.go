// estimate command

package cmd

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"vfx-cost/core/output"
	"vfx-cost/core/types"
	"vfx-cost/internal/errors"
	"vfx-cost/internal/logging"
)

var (
	outputFormat string
	showDetails  bool
	reportTitle  string
	shotFile     string

	basePrice   string
	duration    string
	resolution  string
	frameRate   string
	brief       string
	supervision bool
	reelUsage   bool

	driverLevels = make(map[types.Driver]*string)
)

// estimateCmd represents the estimate command
var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the cost of a single shot",
	Long: `Price one shot and print its itemized breakdown.

The shot starts from the defaults (or from --file) and every flag that is
set overrides one field. Driver flags take None, Easy, Medium or Hard.

Examples:
  vfx-cost estimate --base-price 10000 --duration 5
  vfx-cost estimate --resolution 4K --fps 60 --roto Easy --simulation Hard
  vfx-cost estimate --file shot.yaml --supervision --format json`,
	Args: cobra.NoArgs,
	RunE: runEstimate,
}

func init() {
	flags := estimateCmd.Flags()
	flags.StringVarP(&outputFormat, "format", "f", "", "output format (cli, json, html, markdown)")
	flags.BoolVarP(&showDetails, "details", "d", false, "list every driver, including zero lines")
	flags.StringVar(&reportTitle, "title", "", "report title")
	flags.StringVar(&shotFile, "file", "", "shot configuration file (YAML or JSON)")

	flags.StringVar(&basePrice, "base-price", "100", "price per second of footage")
	flags.StringVar(&duration, "duration", "5", "shot length in seconds")
	flags.StringVar(&resolution, "resolution", string(types.Resolution1080p), "delivery resolution (1080p, 4K, 6K)")
	flags.StringVar(&frameRate, "fps", string(types.FrameRate30), "delivery frame rate (30, 60)")
	flags.StringVar(&brief, "brief", string(types.BriefClear), "client brief clarity")
	flags.BoolVar(&supervision, "supervision", false, "on-scene supervision discount")
	flags.BoolVar(&reelUsage, "reel", false, "showreel usage discount")

	for _, info := range types.Drivers() {
		driverLevels[info.Driver] = flags.String(flagName(info.Driver), string(types.ComplexityNone), info.Label+" complexity")
	}
}

func runEstimate(cmd *cobra.Command, args []string) error {
	format, err := reportFormat(outputFormat)
	if err != nil {
		return err
	}

	shot := types.DefaultShot()
	if shotFile != "" {
		if shot, err = readShot(shotFile); err != nil {
			return err
		}
	}
	shot = applyShotFlags(cmd.Flags(), shot)

	b, err := newEngine().Compute(shot)
	if err != nil {
		return err
	}
	logging.Debug("shot estimated", zap.String("total", b.Total.String()))

	opts := reportOptions(reportTitle, showDetails)
	return output.Render(cmd.OutOrStdout(), format, output.NewShotReport(shot, b, opts), opts)
}

// applyShotFlags overrides the fields whose flags were set
func applyShotFlags(flags *pflag.FlagSet, shot types.ShotConfiguration) types.ShotConfiguration {
	if flags.Changed("base-price") {
		shot.BasePrice = types.ParseAmount(basePrice)
	}
	if flags.Changed("duration") {
		shot.Duration = types.ParseAmount(duration)
	}
	if flags.Changed("resolution") {
		shot.Resolution = types.Resolution(resolution)
	}
	if flags.Changed("fps") {
		shot.FrameRate = types.FrameRate(frameRate)
	}
	for d, level := range driverLevels {
		if flags.Changed(flagName(d)) {
			shot = shot.WithLevel(d, types.Complexity(*level))
		}
	}
	if flags.Changed("brief") {
		shot.Brief = types.Brief(brief)
	}
	if flags.Changed("supervision") {
		shot.OnSceneSupervision = toggle(supervision)
	}
	if flags.Changed("reel") {
		shot.AllowShowreelUsage = toggle(reelUsage)
	}
	return shot
}

// readShot loads a shot configuration; omitted fields keep their defaults.
// YAML is a superset of JSON, so one decoder serves both.
func readShot(path string) (types.ShotConfiguration, error) {
	shot := types.DefaultShot()
	data, err := os.ReadFile(path)
	if err != nil {
		return shot, errors.Wrapf(errors.TypeInput, err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &shot); err != nil {
		return shot, errors.Parsing(fmt.Sprintf("parse %s", path), err)
	}
	return shot, nil
}

func toggle(on bool) types.Toggle {
	if on {
		return types.ToggleYes
	}
	return types.ToggleNo
}

// flagName turns a driver key into a flag name: cameraTracking -> camera-tracking
func flagName(d types.Driver) string {
	var b strings.Builder
	for _, r := range string(d) {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
