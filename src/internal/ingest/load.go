// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/H0llyW00dzZ/certview/src/internal/certgraph"
	"github.com/H0llyW00dzZ/certview/src/internal/helper/gc"
	x509certs "github.com/H0llyW00dzZ/certview/src/internal/x509/certs"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files LoadFiles reads at once when
// Options.Concurrency is not set.
const DefaultConcurrency = 4

// Format is the detected encoding of an input file.
type Format int

const (
	// FormatJSON is a JSON export.
	FormatJSON Format = iota
	// FormatX509 is a PEM, DER or PKCS#7 certificate file.
	FormatX509
)

// String returns the format name.
func (f Format) String() string {
	if f == FormatX509 {
		return "x509"
	}
	return "json"
}

var x509Extensions = map[string]struct{}{
	".pem": {}, ".crt": {}, ".cer": {}, ".der": {},
	".p7b": {}, ".p7c": {}, ".p7": {},
}

// DetectFormat picks the decoder for a file by extension and, for unknown
// extensions, by its first non-space byte.
func DetectFormat(path string, data []byte) Format {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		return FormatJSON
	}
	if _, ok := x509Extensions[ext]; ok {
		return FormatX509
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatX509
}

// DecodeFile decodes the content of one file according to its format.
//
// X.509 files take their foundation from opts.Foundation, or from the file
// name without extension when that is empty.
func DecodeFile(path string, data []byte, opts Options) ([]certgraph.Record, error) {
	if DetectFormat(path, data) == FormatJSON {
		return Decode(data, opts)
	}

	certs, err := x509certs.New().DecodeMultiple(data)
	if err != nil {
		return nil, err
	}

	foundation := opts.Foundation
	if foundation == "" {
		base := filepath.Base(path)
		foundation = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return x509certs.ToRecords(certs, foundation, opts.now()), nil
}

// ReadFile reads path through the shared buffer pool.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	defer f.Close()

	data, err := gc.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRead, path, err)
	}
	return data, nil
}

// LoadFiles reads and decodes paths concurrently and concatenates their
// records in argument order.
//
// At most opts.Concurrency files are read at once. Because the merge
// follows argument order, a version id repeated across files resolves to
// the record from the later file, regardless of which read finished first.
// Synthetic ids carry the file path, so records without ids never collide
// across files.
// The first failure cancels the remaining reads.
//
// Parameters:
//   - ctx: Cancellation for the whole load
//   - paths: Files to load
//   - opts: Clock, default foundation and concurrency bound
//
// Returns:
//   - []certgraph.Record: Records of every file, in argument order
//   - error: First read or decode failure, wrapped with its path
func LoadFiles(ctx context.Context, paths []string, opts Options) ([]certgraph.Record, error) {
	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([][]certgraph.Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := ReadFile(path)
			if err != nil {
				return err
			}

			fileOpts := opts
			fileOpts.Source = path
			records, err := DecodeFile(path, data, fileOpts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]certgraph.Record, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}
