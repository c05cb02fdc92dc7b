package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const stdinName = "-"

// readInput reads a whole input. "-" is stdin; names ending in .zst or .gz
// are decompressed.
func (a *app) readInput(name string) ([]byte, error) {
	if name == stdinName {
		return io.ReadAll(a.stdin)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(name, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: failed to initialize decoder: %w", err)
		}
		defer dec.Close()
		return io.ReadAll(dec)
	case strings.HasSuffix(name, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	default:
		return io.ReadAll(f)
	}
}

// inputSize is the on-disk size of name, or -1 when unknown.
func inputSize(name string) int64 {
	if name == stdinName {
		return -1
	}
	fi, err := os.Stat(name)
	if err != nil {
		return -1
	}
	return fi.Size()
}
