package fs

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrEmptyFile = errors.New("file is empty")
	ErrTooLarge  = errors.New("response exceeds max_response_size")
)

// LocalPath reports whether source names a local file (file:// URL or a
// plain path) and returns the path.
func LocalPath(source string) (string, bool) {
	if strings.HasPrefix(source, "file://") {
		u, err := url.Parse(source)
		if err != nil {
			return strings.TrimPrefix(source, "file://"), true
		}
		if u.Host != "" && u.Host != "localhost" {
			return filepath.Join(u.Host, u.Path), true
		}
		return u.Path, true
	}
	if strings.Contains(source, "://") {
		return "", false
	}
	return source, true
}

// ReadLimited reads path and fails with ErrTooLarge when it holds more than
// maxSize bytes. maxSize <= 0 means no limit.
func ReadLimited(path string, maxSize int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	data, err := ReadAllLimited(f, maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// ReadAllLimited reads r to the end. When r holds more than maxSize bytes it
// returns the first maxSize bytes together with ErrTooLarge.
func ReadAllLimited(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxSize+1))
	if err != nil {
		return data, err
	}
	if int64(len(data)) > maxSize {
		return data[:maxSize], fmt.Errorf("%w (%d bytes)", ErrTooLarge, maxSize)
	}
	return data, nil
}

// WriteChartFile writes data to dir/filename, creating dir, and removes the
// file again if nothing ended up on disk.
func WriteChartFile(dir, filename string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	fullPath := filepath.Join(dir, filename)
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}

	info, err := os.Stat(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", filename, err)
	}
	if info.Size() == 0 {
		os.Remove(fullPath)
		return "", fmt.Errorf("%s: %w", filename, ErrEmptyFile)
	}
	return fullPath, nil
}
