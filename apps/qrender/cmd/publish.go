package cmd

import (
	"fmt"
	"time"

	"github.com/quatton/qrender/pkg/qart"
	"github.com/spf13/cobra"
)

var (
	publishName    string
	publishReplace bool
	publishPresign time.Duration
)

var publishCmd = &cobra.Command{
	Use:   "publish [flags] <output-dir>",
	Short: "Upload rendered frames and the render log to S3",
	Long: `Upload every render_* file in an output directory to S3-compatible
storage under renders/<name>/. Storage is configured under 'artifacts' in
qrender.yaml or with QRENDER_ARTIFACTS_* environment variables.

Examples:
  qrender publish ./shots/renders
  qrender publish --name shot010 --replace --presign 24h ./shots/renders`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		logger := GetLogger(cmd)

		if cfg.Artifacts.Endpoint == "" {
			return fmt.Errorf("no artifact storage configured: set artifacts.endpoint in qrender.yaml or QRENDER_ARTIFACTS_ENDPOINT")
		}

		store, err := qart.NewS3Store(cfg.Artifacts)
		if err != nil {
			return fmt.Errorf("creating artifact store: %w", err)
		}

		logger.Debug("publishing", "dir", args[0], "bucket", cfg.Artifacts.Bucket)

		artifacts, err := qart.Publish(cmd.Context(), store, args[0], qart.PublishOptions{
			Name:       publishName,
			Replace:    publishReplace,
			PresignTTL: publishPresign,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, a := range artifacts {
			fmt.Fprintf(out, "%s %s %s\n", styleSuccess.Render(iconSuccess), a.Key, styleDim.Render(fmt.Sprintf("(%d bytes)", a.Size)))
			if a.URL != "" {
				fmt.Fprintf(out, "  %s %s\n", styleDim.Render(iconArrow), styleLink.Render(a.URL))
			}
		}
		logger.Info("published render outputs", "count", len(artifacts), "bucket", cfg.Artifacts.Bucket)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)

	publishCmd.Flags().StringVar(&publishName, "name", "", "name under renders/ (default: the directory name)")
	publishCmd.Flags().BoolVar(&publishReplace, "replace", false, "remove previously published files with the same name")
	publishCmd.Flags().DurationVar(&publishPresign, "presign", 0, "print presigned download URLs valid for this long")
}
