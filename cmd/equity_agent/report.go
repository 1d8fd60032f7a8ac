package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jonathan/equity-insight/internal/config"
	"github.com/jonathan/equity-insight/internal/observability"
	"github.com/jonathan/equity-insight/internal/research"
	"github.com/jonathan/equity-insight/internal/schemas"
	"github.com/jonathan/equity-insight/internal/types"
	"github.com/jonathan/equity-insight/internal/ui"
)

var (
	reportJSON bool
	reportOut  string
)

var reportCmd = &cobra.Command{
	Use:   "report <company name>",
	Short: "Generate a company research report",
	Long:  `Generate a grounded research report for a public company and print it to stdout.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Emit the raw report JSON instead of formatted output")
	reportCmd.Flags().StringVarP(&reportOut, "out", "o", "", "Write output to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	cfg := config.Load()

	svc, err := research.New(cmd.Context(), cfg.APIKey, cfg.LLMConfig(), logger)
	if err != nil {
		logger.Debug().Err(err).Msg("service construction failed")
		return errors.New(research.UserMessage(err))
	}

	// The CLI walks the same state machine interactive clients use: submit,
	// wait, settle into either an error message or a report.
	state := ui.Idle().Submit(strings.Join(args, " "))

	report, err := svc.FetchReport(cmd.Context(), state.Query)
	state = state.Settled(report, err)

	if state.Phase == ui.PhaseError {
		logger.Debug().Err(err).Str("company", state.Query).Msg("report generation failed")
		return errors.New(state.Message)
	}

	out := cmd.OutOrStdout()
	if reportOut != "" {
		f, err := os.Create(reportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if reportJSON {
		return writeReportJSON(out, state.Report, logger)
	}

	observability.NewPrinter(out).PrintReport(state.Report)
	return nil
}

func writeReportJSON(out io.Writer, report *types.Report, logger zerolog.Logger) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := schemas.ValidateReport(data); err != nil {
		logger.Warn().Err(err).Msg("report does not satisfy the wire schema")
	}

	_, err = fmt.Fprintln(out, string(data))
	return err
}
