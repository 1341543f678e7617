package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/quatton/qrender/pkg/qconfig"
	"github.com/quatton/qrender/pkg/qrender"
	"github.com/spf13/cobra"
)

var renderJSON bool

var renderCmd = &cobra.Command{
	Use:   "render [flags] <document>",
	Short: "Render a saved document",
	Long: `Render a saved document in the background (external mode) or in the
foreground (internal mode).

Examples:
  # Render the whole animation in the background
  qrender render ./shots/shot010.blend

  # Render frame 12 only, writing frames to ./out
  qrender render --animate=false --frame 12 --output ./out ./shots/shot010.blend

  # Block until the render is done
  qrender render --mode internal ./shots/shot010.blend`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		if err := bindRenderFlags(cmd, cfg); err != nil {
			return err
		}

		// An empty document is reported by the launcher like an unsaved one.
		var document string
		if len(args) == 1 {
			document = args[0]
		}
		req := cfg.Request(document)

		launcher := qrender.NewLauncher(
			qrender.WithLogger(GetLogger(cmd)),
			qrender.WithEmbeddedRenderer(qrender.ForegroundRenderer{
				Executable: cfg.Executable,
				Stdout:     os.Stdout,
				Stderr:     os.Stderr,
			}),
		)

		res := launcher.LaunchRenderJob(cmd.Context(), req)

		if renderJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encoding result: %w", err)
			}
		} else {
			printResult(cmd.OutOrStdout(), res)
		}

		if res.Failed() {
			return errFailed
		}
		return nil
	},
}

// bindRenderFlags lets explicitly set flags override config and env.
func bindRenderFlags(cmd *cobra.Command, cfg *qconfig.Config) error {
	v := cfg.Viper()
	for flag, key := range map[string]string{
		"executable":   qconfig.ExecutableKey,
		"output":       qconfig.OutputDirKey,
		"mode":         qconfig.ModeKey,
		"animate":      qconfig.AnimateKey,
		"frame":        qconfig.FrameKey,
		"scene-output": qconfig.SceneOutputKey,
	} {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}
	return cfg.Reload()
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().String("executable", "", "renderer executable (overrides config)")
	renderCmd.Flags().StringP("output", "o", "", "output directory (default: renders/ next to the document)")
	renderCmd.Flags().StringP("mode", "m", "", "external (background process) or internal (foreground)")
	renderCmd.Flags().BoolP("animate", "a", true, "render the whole animation")
	renderCmd.Flags().IntP("frame", "f", 1, "frame to render when --animate=false")
	renderCmd.Flags().Bool("scene-output", false, "keep the document's own output path")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "print the result as JSON")
}
