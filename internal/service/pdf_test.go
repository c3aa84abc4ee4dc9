package service

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalPDF assembles a one-page PDF showing the given ASCII text.
// Object offsets are recorded while writing so the xref table is exact.
func buildMinimalPDF(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	offsets := make([]int, 6)
	obj := func(n int, body string) {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, body)
	}

	buf.WriteString("%PDF-1.4\n")
	obj(1, "<< /Type /Catalog /Pages 2 0 R >>")
	obj(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	obj(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", text)
	obj(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream))
	obj(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")

	xrefPos := buf.Len()
	buf.WriteString("xref\n0 6\n")
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n <= 5; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xrefPos)
	return buf.Bytes()
}

func TestExtractPDFText(t *testing.T) {
	data := buildMinimalPDF(t, "Hello from the attachment")

	got, err := ExtractPDFText(data)
	require.NoError(t, err)
	assert.Contains(t, got, "Hello")
	assert.Contains(t, got, "attachment")
	assert.Equal(t, strings.TrimSpace(got), got)
}

func TestExtractPDFText_GarbageFails(t *testing.T) {
	_, err := ExtractPDFText([]byte("this is not a pdf at all"))
	assert.Error(t, err)

	_, err = ExtractPDFText(nil)
	assert.Error(t, err)
}

func TestIsPDFFilename(t *testing.T) {
	assert.True(t, IsPDFFilename("report.pdf"))
	assert.True(t, IsPDFFilename("REPORT.PDF"))
	assert.False(t, IsPDFFilename("report.txt"))
	assert.False(t, IsPDFFilename("report.pdf.exe"))
	assert.False(t, IsPDFFilename(""))
}
