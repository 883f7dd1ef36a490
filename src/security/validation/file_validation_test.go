package validation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateClientContentType(t *testing.T) {
	allowed := []string{
		"text/csv",
		"application/json",
		"text/csv; charset=utf-8",
		"TEXT/CSV",
		"application/vnd.ms-excel",
	}
	for _, ct := range allowed {
		assert.NoError(t, ValidateClientContentType(ct), "content type %q", ct)
	}

	rejected := []string{
		"application/zip",
		"image/png",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"",
	}
	for _, ct := range rejected {
		assert.Error(t, ValidateClientContentType(ct), "content type %q", ct)
	}
}

func TestValidateFileContentByMagicBytes(t *testing.T) {
	csv := strings.NewReader("txid,pair,vol\nABC,XXBTZUSD,0.1\n")
	detected, err := ValidateFileContentByMagicBytes(csv)
	require.NoError(t, err)
	assert.Contains(t, detected, "text/plain")

	// The read pointer is reset for the downstream parser.
	rest := make([]byte, 4)
	n, _ := csv.Read(rest)
	assert.Equal(t, "txid", string(rest[:n]))

	png := bytes.NewReader([]byte("\x89PNG\r\n\x1a\n0000000000"))
	_, err = ValidateFileContentByMagicBytes(png)
	assert.Error(t, err)

	_, err = ValidateFileContentByMagicBytes(nil)
	assert.Error(t, err)
}
