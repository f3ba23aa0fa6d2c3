package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"alfredoptarigan/resume-shortlister/internal/app"
	"alfredoptarigan/resume-shortlister/internal/config"
	"alfredoptarigan/resume-shortlister/internal/logger"
	"alfredoptarigan/resume-shortlister/internal/report"
	"alfredoptarigan/resume-shortlister/internal/services"
)

const (
	formatMarkdown = "markdown"
	formatCSV      = "csv"
	formatPDF      = "pdf"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] RESUME.pdf...",
	Short: "Shortlist the given resumes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("job-description", "f", "", "file with the job description text (required)")
	runCmd.Flags().StringP("format", "o", formatMarkdown, "output format: markdown, csv or pdf")
	runCmd.Flags().String("output", "", "write the report to this file instead of stdout (required for pdf)")
	runCmd.Flags().Float64("threshold", -1, "score threshold override in [0, 10]")
	runCmd.Flags().Bool("filter", false, "drop candidates below the threshold from the report")

	runCmd.MarkFlagRequired("job-description")
}

func run(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(mustString(cmd, "format"))
	output := mustString(cmd, "output")
	if err := checkFormat(format, output); err != nil {
		return err
	}

	cfg, err := config.LoadFile(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(viper.GetBool("json") || cfg.Log.JSON, viper.GetBool("debug") || cfg.Log.Debug)
	if err != nil {
		return fmt.Errorf("creating a logger: %w", err)
	}
	defer log.Sync()

	jobDescription, err := os.ReadFile(mustString(cmd, "job-description"))
	if err != nil {
		return fmt.Errorf("reading job description: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, err := app.Build(ctx, cfg, log)
	if err != nil {
		return err
	}

	files, err := pipeline.Uploads.ReadPaths(args)
	if err != nil {
		return err
	}

	req := services.RunRequest{
		JobDescription: string(jobDescription),
		Files:          files,
	}
	if cmd.Flags().Changed("threshold") {
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		req.ScoreThreshold = &threshold
	}
	if cmd.Flags().Changed("filter") {
		filter, _ := cmd.Flags().GetBool("filter")
		req.FilterBelowThreshold = &filter
	}

	log.Info("starting the shortlist", zap.String("version", version), zap.Int("resumes", len(files)), zap.String("model", pipeline.Model))

	result, err := pipeline.Shortlister.Run(ctx, req)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		out = f
	}

	if err := render(out, format, report.Assemble(result)); err != nil {
		return err
	}

	log.Info("shortlist written",
		zap.String("format", format),
		zap.String("output", output),
		zap.Int("entries", len(result.Entries)),
		zap.Int("failed", result.TotalFailed),
	)
	return nil
}

func checkFormat(format, output string) error {
	switch format {
	case formatMarkdown, formatCSV:
		return nil
	case formatPDF:
		if output == "" {
			return errors.New("pdf output needs --output")
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q, want markdown, csv or pdf", format)
	}
}

func render(w io.Writer, format string, table *report.Table) error {
	switch format {
	case formatCSV:
		return report.WriteCSV(w, table)
	case formatPDF:
		return report.WritePDF(w, table)
	default:
		_, err := io.WriteString(w, report.Markdown(table))
		return err
	}
}

func mustString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("flag %s is not registered: %v", name, err))
	}
	return value
}
