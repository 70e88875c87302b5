// =============================================================================
// Sales Analytics - File Manager Utility
// =============================================================================
//
// This module provides the output-side file utilities:
//   - Output directory management
//   - Output file naming with placeholder expansion
//   - Buffered text report writing
//
// Output names may contain placeholders so repeated runs can keep their
// artifacts side by side instead of overwriting each other:
//   {uuid}      - A random UUID
//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
//   {date}      - Current date (YYYYMMDD)
//   {time}      - Current time (HHMMSS)
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OutputManager resolves and writes output artifacts under one directory.
type OutputManager struct {
	// OutputDir is the directory where artifacts are written.
	OutputDir string
}

// NewOutputManager creates an OutputManager for the given directory.
func NewOutputManager(outputDir string) *OutputManager {
	return &OutputManager{OutputDir: outputDir}
}

// EnsureDir creates the output directory if it does not exist.
func (m *OutputManager) EnsureDir() error {
	if err := os.MkdirAll(m.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", m.OutputDir, err)
	}
	return nil
}

// Resolve expands naming placeholders and joins the name onto the output
// directory.
func (m *OutputManager) Resolve(name string) string {
	return filepath.Join(m.OutputDir, ExpandName(name))
}

// WriteReport writes a text report to the output directory and returns the
// full path of the written file.
func (m *OutputManager) WriteReport(name, content string) (string, error) {
	path := m.Resolve(name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create report %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err := writer.WriteString(content); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush report %s: %w", path, err)
	}

	return path, nil
}

// ExpandName replaces the supported placeholders in an output file name.
func ExpandName(name string) string {
	now := time.Now()

	replacements := map[string]string{
		"{uuid}":      uuid.New().String(),
		"{timestamp}": now.Format("20060102_150405"),
		"{date}":      now.Format("20060102"),
		"{time}":      now.Format("150405"),
	}

	for placeholder, value := range replacements {
		name = strings.ReplaceAll(name, placeholder, value)
	}

	return name
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
