package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/fraudgrade/internal/config"
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fraudgrade",
		Short: "Grade fraud-detection submissions",
		Long: "fraudgrade scores student fraud predictions against an answer key, " +
			"ranks them by net financial impact and charts cumulative impact over time.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(cmd)
		},
	}

	cmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./"+config.DefaultFile+" if present)")
	cmd.Flags().String("dir", "", "Directory holding submissions and the answer key (overrides FRAUDGRADE_DIR)")
	cmd.Flags().String("answer-key", "", "Answer key file; a bare name is looked up in --dir (overrides FRAUDGRADE_ANSWER_KEY)")
	cmd.Flags().String("chart", "", "Where to write the cumulative impact chart (overrides FRAUDGRADE_CHART)")
	cmd.Flags().String("log-level", "", "Diagnostic log level: debug, info, warn, error (overrides FRAUDGRADE_LOG_LEVEL)")

	cmd.AddCommand(versionCmd)
	return cmd
}

func Execute() error {
	return rootCmd.Execute()
}

// resolveConfig layers configuration in priority order: flags, then
// FRAUDGRADE_* env vars, then the config file, then built-in defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv()

	if v, _ := cmd.Flags().GetString("dir"); v != "" {
		cfg.SubmissionsDir = v
	}
	if v, _ := cmd.Flags().GetString("answer-key"); v != "" {
		cfg.AnswerKey = v
	}
	if v, _ := cmd.Flags().GetString("chart"); v != "" {
		cfg.Chart = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
