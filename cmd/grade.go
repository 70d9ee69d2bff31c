package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fraudgrade/internal/answerkey"
	"github.com/abhisek/fraudgrade/internal/config"
	"github.com/abhisek/fraudgrade/internal/grading"
	"github.com/abhisek/fraudgrade/internal/logging"
	"github.com/abhisek/fraudgrade/internal/report"
	"github.com/abhisek/fraudgrade/internal/submission"
)

// runGrade resolves configuration, builds the logger, and grades.
func runGrade(cmd *cobra.Command) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	return grade(cmd.OutOrStdout(), cfg, log)
}

// grade runs the whole pipeline. Only answer key, discovery and output
// failures are returned; bad submissions are reported and skipped.
func grade(out io.Writer, cfg config.Config, log *zap.Logger) error {
	key, err := answerkey.Load(cfg.AnswerKeyPath())
	if err != nil {
		return fmt.Errorf("load answer key: %w", err)
	}
	log.Info("answer key loaded",
		zap.String("path", key.Path),
		zap.Int("transactions", key.Len()),
		zap.Bool("has_ids", key.HasID),
	)
	if key.Err != nil {
		log.Warn("answer key rows are invalid, every submission will be skipped",
			zap.String("path", key.Path),
			zap.Error(key.Err),
		)
	}

	paths, err := submission.Discover(cfg.SubmissionsDir, cfg.AnswerKeyName())
	if err != nil {
		return fmt.Errorf("discover submissions: %w", err)
	}
	log.Info("submissions discovered", zap.Int("count", len(paths)))

	batch := grading.NewGrader(key, log).Run(paths)

	if err := report.WriteSkips(out, batch.Skipped); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if err := report.WriteTable(out, batch.Results); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if len(batch.Results) == 0 {
		return nil
	}

	if err := report.RenderChart(batch.Results, cfg.Chart); err != nil {
		return err
	}
	if err := report.WriteChartSaved(out, cfg.Chart); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info("grading complete",
		zap.Int("graded", len(batch.Results)),
		zap.Int("skipped", len(batch.Skipped)),
	)
	return nil
}
