// Copyright (c) 2025 Neomantra Corp
// Reader/Writer Compression helpers
//
// Adapted from Neomantra's Gist, but narrowed to gzip, the compression the
// ITCH feed distributor actually ships:
//
// https://gist.github.com/neomantra/691a6028cdf2ac3fc6ec97d00e8ea802
//

package itch

import (
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

///////////////////////////////////////////////////////////////////////////////

// MakeCompressedWriter returns an io.Writer for the given filename, or
// os.Stdout if filename is "-". Also returns a closing function to defer and
// any error. If the filename ends in ".gz", or useGzip is true, the writer
// gzip-compresses the output.
func MakeCompressedWriter(filename string, useGzip bool) (io.Writer, func(), error) {
	var writer io.Writer
	var closer io.Closer
	fileCloser := func() {
		if closer != nil {
			closer.Close()
		}
	}
	if filename != "-" {
		if file, err := os.Create(filename); err == nil {
			writer, closer = file, file
		} else {
			return nil, nil, err
		}
	} else {
		writer, closer = os.Stdout, nil
	}

	if useGzip || strings.HasSuffix(filename, ".gz") {
		gzWriter := gzip.NewWriter(writer)
		gzCloser := func() {
			gzWriter.Close()
			fileCloser()
		}
		return gzWriter, gzCloser, nil
	}
	return writer, fileCloser, nil
}

///////////////////////////////////////////////////////////////////////////////

// MakeCompressedReader returns an io.Reader for the given filename, or
// os.Stdin if filename is "-", and a closing function to defer. If the
// filename ends in ".gz", or useGzip is true, the reader gzip-decompresses
// the input, matching the `S<MMDDYY>-v50.txt.gz` feed naming convention.
func MakeCompressedReader(filename string, useGzip bool) (io.Reader, func(), error) {
	var reader io.Reader
	var closer io.Closer
	fileCloser := func() {
		if closer != nil {
			closer.Close()
		}
	}

	if filename != "-" {
		if file, err := os.Open(filename); err == nil {
			reader, closer = file, file
		} else {
			return nil, nil, err
		}
	} else {
		reader, closer = os.Stdin, nil
	}

	if useGzip || strings.HasSuffix(filename, ".gz") {
		gzReader, err := gzip.NewReader(reader)
		if err != nil {
			fileCloser()
			return nil, nil, err
		}
		gzCloser := func() {
			gzReader.Close()
			fileCloser()
		}
		return gzReader, gzCloser, nil
	}
	return reader, fileCloser, nil
}
