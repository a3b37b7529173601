package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/golang/snappy"
)

// FileSource reads a dataset from the local filesystem. Files ending in .sz
// are snappy-compressed.
type FileSource struct {
	path       string
	format     Format
	compressed bool
}

// NewFileSource creates a file source. An empty format is inferred from the
// file name.
func NewFileSource(path, format string) (*FileSource, error) {
	f, compressed, err := resolveFormat(path, format)
	if err != nil {
		return nil, err
	}
	return &FileSource{path: path, format: f, compressed: compressed}, nil
}

// Name returns the file path
func (s *FileSource) Name() string { return s.path }

// Load reads and decodes the file
func (s *FileSource) Load(ctx context.Context) (*Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, newLoadError("open", s.path, 0, err)
	}
	defer f.Close()

	r, err := maybeDecompress(f, s.compressed)
	if err != nil {
		return nil, newLoadError("decompress", s.path, 0, err)
	}
	return decode(r, s.format, s.path)
}

// Close is a no-op for files
func (s *FileSource) Close() error { return nil }

// WriteFile encodes a dataset to path, snappy-compressing when the path ends
// in .sz.
func WriteFile(path string, ds *Dataset, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, ds, format); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}

	data := buf.Bytes()
	if strings.HasSuffix(strings.ToLower(path), SnappySuffix) {
		data = snappy.Encode(nil, data)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset %s: %w", path, err)
	}
	return nil
}

// WriteSnappy writes a snappy-compressed dataset regardless of the file name
func WriteSnappy(w io.Writer, ds *Dataset, format Format) error {
	var buf bytes.Buffer
	if err := Encode(&buf, ds, format); err != nil {
		return fmt.Errorf("failed to encode dataset: %w", err)
	}
	_, err := w.Write(snappy.Encode(nil, buf.Bytes()))
	return err
}

func maybeDecompress(r io.Reader, compressed bool) (io.Reader, error) {
	if !compressed {
		return r, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("snappy: %w", err)
	}
	return bytes.NewReader(raw), nil
}

// resolveFormat combines an explicit format with what the name implies
func resolveFormat(name, format string) (Format, bool, error) {
	compressed := strings.HasSuffix(strings.ToLower(name), SnappySuffix)
	if format != "" {
		f, err := ParseFormat(format)
		return f, compressed, err
	}
	return DetectFormat(name)
}
