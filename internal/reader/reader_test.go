package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func writeTempFile(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sales_data.txt")
	assert.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReadSalesDataSkipsHeaderAndBlanks(t *testing.T) {
	content := "TransactionID|Date|ProductID|ProductName|Quantity|UnitPrice|CustomerID|Region\n" +
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North\n" +
		"\n" +
		"   \n" +
		"T002|2024-12-02|P102|Mouse|5|500|C002|South\n"

	lines, err := ReadSalesData(writeTempFile(t, []byte(content)))

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"T001|2024-12-01|P101|Laptop|2|45000|C001|North",
		"T002|2024-12-02|P102|Mouse|5|500|C002|South",
	}, lines)
}

func TestReadSalesDataTrimsLines(t *testing.T) {
	content := "header\n  T001|2024-12-01|P101|Laptop|2|45000|C001|North  \r\n"

	lines, err := ReadSalesData(writeTempFile(t, []byte(content)))

	assert.NoError(t, err)
	assert.Equal(t, 1, len(lines))
	assert.Equal(t, "T001|2024-12-01|P101|Laptop|2|45000|C001|North", lines[0])
}

func TestReadSalesDataLegacyEncoding(t *testing.T) {
	// "Café" with a Windows-1252 é (0xE9); the file is not valid UTF-8.
	content := append([]byte("header\nT001|2024-12-01|P101|Caf"), 0xE9)
	content = append(content, []byte("|2|45000|C001|North\n")...)

	lines, err := ReadSalesData(writeTempFile(t, content))

	assert.NoError(t, err)
	assert.Equal(t, 1, len(lines))
	assert.Equal(t, "T001|2024-12-01|P101|Café|2|45000|C001|North", lines[0])
}

func TestReadSalesDataMissingFile(t *testing.T) {
	_, err := ReadSalesData(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

func TestReadSalesDataHeaderOnly(t *testing.T) {
	lines, err := ReadSalesData(writeTempFile(t, []byte("header only\n")))

	assert.NoError(t, err)
	assert.Equal(t, 0, len(lines))
}
