// Copyright (c) 2025 Neomantra Corp

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marketfeeds/itch-go"
	"github.com/marketfeeds/itch-go/internal/fetch"
	"github.com/marketfeeds/itch-go/internal/file"
	"github.com/marketfeeds/itch-go/internal/tui"
)

var (
	locateFilePath string
	tickers        []string
	outFormat      string
	outPath        string
	fetchBaseURL   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "itch-go <MMDDYY>",
		Short: "itch-go replays a NASDAQ ITCH-v5.0 feed file into per-symbol order-book events",
	}
	rootCmd.PersistentFlags().StringVar(&locateFilePath, "locates", "", "path to the TICKER,LOCATE CSV file")
	rootCmd.PersistentFlags().StringSliceVar(&tickers, "symbols", nil, "tracked ticker symbols")
	rootCmd.PersistentFlags().StringVar(&fetchBaseURL, "fetch-base-url", "", "base URL to fetch missing feed/locate files from")
	rootCmd.MarkPersistentFlagRequired("locates")
	rootCmd.MarkPersistentFlagRequired("symbols")

	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newTuiCmd())

	if err := rootCmd.Execute(); err != nil {
		requireNoError(err)
	}
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <MMDDYY>",
		Short: "replay a day's feed file and emit annotated events",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sourceFile := fmt.Sprintf("S%s-v50.txt.gz", args[0])
			ctx := context.Background()
			requireNoError(ensureLocalFile(ctx, sourceFile, fetchBaseURL))
			requireNoError(ensureLocalFile(ctx, locateFilePath, fetchBaseURL))

			results, sessions, err := file.ReplayFile(sourceFile, locateFilePath, tickers)
			requireNoError(err)

			if outFormat == "parquet" {
				requireNoError(writeParquet(results, outPath))
				return
			}

			out, closer, err := openOutput(outPath)
			requireNoError(err)
			defer closer()

			visitor, err := newVisitor(outFormat, out)
			requireNoError(err)

			requireNoError(file.VisitSessions(sessions, visitor))
			for _, result := range results {
				requireNoError(file.VisitReplay(result.Events, visitor))
			}
		},
	}
	cmd.Flags().StringVar(&outFormat, "format", "csv", "output format: csv, json, or parquet")
	cmd.Flags().StringVar(&outPath, "out", "-", "output file (csv/json), or output directory (parquet); - for stdout (csv/json) or the current directory (parquet)")
	return cmd
}

func newTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui <MMDDYY>",
		Short: "replay a day's feed file with a live dashboard",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			sourceFile := fmt.Sprintf("S%s-v50.txt.gz", args[0])
			ctx := context.Background()
			requireNoError(ensureLocalFile(ctx, sourceFile, fetchBaseURL))
			requireNoError(ensureLocalFile(ctx, locateFilePath, fetchBaseURL))

			date, err := time.Parse("010206", args[0])
			requireNoError(err)

			results, _, err := file.ReplayFile(sourceFile, locateFilePath, tickers)
			requireNoError(err)

			model := tui.NewModel(len(results), date)
			program := tea.NewProgram(model)

			go func() {
				for _, result := range results {
					program.Send(tui.SymbolDoneMsg{Result: result})
				}
				program.Send(tui.ReplayDoneMsg{})
			}()

			if _, err := program.Run(); err != nil {
				requireNoError(err)
			}
		},
	}
}

// ensureLocalFile fetches path from fetchBaseURL if it isn't already present
// locally. A blank fetchBaseURL leaves a missing file as a later open error.
func ensureLocalFile(ctx context.Context, path string, fetchBaseURL string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if fetchBaseURL == "" {
		return nil
	}
	url := fetchBaseURL + "/" + path
	fmt.Fprintf(os.Stderr, "itch-go: fetching %s\n", url)
	if err := fetch.Download(ctx, url, path, nil); err != nil {
		return fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	if info, err := os.Stat(path); err == nil {
		fmt.Fprintf(os.Stderr, "itch-go: fetched %s (%s bytes)\n", path, fetch.HumanizeBytes(info.Size()))
	}
	return nil
}

// writeParquet writes one Parquet file per symbol into outDir, named by ticker.
func writeParquet(results []file.ReplayResult, outDir string) error {
	if outDir == "-" {
		outDir = "."
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, result := range results {
		dest := filepath.Join(outDir, result.Ticker+".parquet")
		if err := file.WriteReplayAsParquet(dest, result.Events); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
	}
	return nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func newVisitor(format string, out *os.File) (itch.Visitor, error) {
	switch format {
	case "csv":
		return file.NewCsvWriterVisitor(out)
	case "json":
		return &file.JsonWriterVisitor{Writer: out}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func requireNoError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "itch-go:", err)
		os.Exit(1)
	}
}
