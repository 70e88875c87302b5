// =============================================================================
// Sales Analytics - Input Reader
// =============================================================================
//
// This module reads the raw sales data file. Input files come from legacy
// exports and are not guaranteed to be UTF-8: the reader tries UTF-8 first
// and falls back to Windows-1252 and then ISO-8859-1, tolerating undecodable
// bytes rather than failing. A missing or unreadable file is the one fatal
// error in the pipeline; there is nothing to process without it.
//
// =============================================================================

package reader

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// fallbackEncodings are tried in order when the file is not valid UTF-8.
var fallbackEncodings = []encoding.Encoding{
	charmap.Windows1252,
	charmap.ISO8859_1,
}

// ReadSalesData reads the input file and returns the raw data lines.
// The header line is always skipped, blank lines are dropped, and every
// returned line is trimmed of surrounding whitespace.
func ReadSalesData(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	text := decode(data)

	var lines []string
	for i, line := range strings.Split(text, "\n") {
		if i == 0 {
			// Header row.
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lines = append(lines, line)
	}

	return lines, nil
}

// decode converts raw file bytes to a string, trying UTF-8 first and then
// the legacy single-byte fallbacks. The charmap decoders substitute
// undecodable bytes instead of erroring, so decoding itself never fails the
// run.
func decode(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	for _, enc := range fallbackEncodings {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err == nil {
			return string(decoded)
		}
	}

	// Last resort: interpret the bytes as-is.
	return string(data)
}
