/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Abyteon/vhr-parser/pkg/decode"
	"github.com/Abyteon/vhr-parser/pkg/metrics"
	"github.com/Abyteon/vhr-parser/pkg/pipeline"
	"github.com/Abyteon/vhr-parser/pkg/writer"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a directory of logger files to parquet",
	Long: `Convert recursively scans the input root for .bin container files and
writes one snappy-compressed parquet file per input, mirroring the input's
directory structure under the output root.

Frames are decoded against a YAML signal database when one is supplied;
otherwise they are passed through undecoded with the payload hex-encoded.

Examples:
  vhr convert --input ./data/input --output ./data/output
  vhr convert --input ./in --output ./out --signals signals.yaml --workers 8
  vhr convert --input ./in --output ./out --resume --metrics-listen 127.0.0.1:9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		workers, _ := cmd.Flags().GetInt("workers")
		signalDB, _ := cmd.Flags().GetString("signals")
		resume, _ := cmd.Flags().GetBool("resume")
		metricsAddr, _ := cmd.Flags().GetString("metrics-listen")
		level, _ := cmd.Flags().GetString("log-level")

		// Flags override the config file.
		if input == "" {
			input = cfg.InputDir
		}
		if output == "" {
			output = cfg.OutputDir
		}
		if workers == 0 {
			workers = cfg.Workers
		}
		if signalDB == "" {
			signalDB = cfg.SignalDB
		}
		if !resume {
			resume = cfg.Resume
		}
		if metricsAddr == "" {
			metricsAddr = cfg.Metrics.Listen
		}
		if level == "" {
			level = cfg.Logging.Level
		}

		if input == "" || output == "" {
			return fmt.Errorf("--input and --output are required")
		}

		log := newLogger(level)

		var dec decode.FrameDecoder = decode.RawDecoder{}
		if signalDB != "" {
			db, err := decode.LoadSignalDatabase(signalDB)
			if err != nil {
				return err
			}
			dec = decode.NewSignalDecoder(db)
			log.Info().Str("signals", signalDB).Int("messages", len(db.Messages)).Msg("signal database loaded")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if metricsAddr != "" {
			go func() {
				if err := metrics.Serve(ctx, metricsAddr); err != nil {
					log.Error().Err(err).Msg("metrics listener failed")
				}
			}()
		}

		orch := pipeline.NewOrchestrator(pipeline.OrchestratorConfig{
			InputRoot:  input,
			OutputRoot: output,
			Workers:    workers,
			Resume:     resume,
		}, dec, writer.NewParquetWriter(), log)

		summary, err := orch.Run(ctx)
		if err != nil {
			return err
		}

		cmd.Printf("%d succeeded, %d failed, %d skipped (run %s)\n",
			summary.Succeeded, summary.Failed, summary.Skipped, summary.RunID)
		for _, failure := range summary.Failures {
			cmd.Printf("  failed: %s: %v\n", failure.InputPath, failure.Err)
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d of %d files failed", summary.Failed, summary.Processed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("input", "i", "", "Input root to scan for .bin files")
	convertCmd.Flags().StringP("output", "o", "", "Output root for parquet files")
	convertCmd.Flags().IntP("workers", "w", 0, "Worker count (default: number of CPUs)")
	convertCmd.Flags().StringP("signals", "s", "", "YAML signal database for frame decoding")
	convertCmd.Flags().Bool("resume", false, "Skip inputs unchanged since a previous run")
	convertCmd.Flags().String("metrics-listen", "", "Address for the Prometheus scrape endpoint")
	convertCmd.Flags().String("log-level", "", "Log level (trace, debug, info, warn, error)")
}
