// Copyright (c) 2025 Neomantra Corp

// Package fetch downloads daily ITCH feed and locate files over HTTP,
// retrying transient failures and only publishing a complete file.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
)

// ProgressFunc is called periodically with the number of bytes written so far.
type ProgressFunc func(written int64)

// progressWriter is an io.Writer that reports cumulative bytes written,
// meant to be paired with io.TeeReader around the response body.
type progressWriter struct {
	total    int64
	onWrite  ProgressFunc
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.total += int64(len(p))
	if w.onWrite != nil {
		w.onWrite(w.total)
	}
	return len(p), nil
}

// Download fetches url into destPath, retrying transient HTTP failures up
// to 10 times. It writes to a temp file alongside destPath and renames into
// place only once the full body has been received, so a crash mid-download
// never leaves a truncated file at destPath.
func Download(ctx context.Context, url string, destPath string, onProgress ProgressFunc) error {
	client := retryablehttp.NewClient()
	client.RetryMax = 10
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return fmt.Errorf("download failed: %s returned status %d", url, resp.StatusCode)
	}

	tmpPath := destPath + ".part"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	progress := &progressWriter{onWrite: onProgress}
	_, err = io.Copy(tmpFile, io.TeeReader(resp.Body, progress))
	closeErr := tmpFile.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download write failed: %w", err)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", closeErr)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to finalize download: %w", err)
	}
	return nil
}

// HumanizeBytes formats a byte count with thousands separators for progress
// display, e.g. "4,200,000".
func HumanizeBytes(n int64) string {
	return humanize.Comma(n)
}
