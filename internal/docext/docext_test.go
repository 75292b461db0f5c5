package docext

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onetrip/travel-planner/pkg/logger"
)

func TestExtractText(t *testing.T) {
	s := NewService(10<<20, logger.NewNop())

	t.Run("images yield empty text without an OCR engine", func(t *testing.T) {
		assert.Empty(t, s.ExtractText([]byte{0x89, 0x50, 0x4e, 0x47}, "image/png"))
		assert.Empty(t, s.ExtractText(nil, "image/jpeg"))
	})

	t.Run("unsupported types are skipped", func(t *testing.T) {
		assert.Empty(t, s.ExtractText([]byte("plain content"), "text/plain"))
		assert.Empty(t, s.ExtractText([]byte("spreadsheet"), "application/vnd.ms-excel"))
	})

	t.Run("unreadable pdf content yields empty text", func(t *testing.T) {
		assert.Empty(t, s.ExtractText([]byte("not a real pdf"), "application/pdf"))
	})
}

func TestCleanText(t *testing.T) {
	t.Run("collapses repeated blank lines", func(t *testing.T) {
		cleaned := cleanText("flight details\n\n\n\nhotel booking reference")
		assert.Equal(t, "flight details\n\nhotel booking reference", cleaned)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		assert.Equal(t, "itinerary attached", cleanText("  itinerary attached  \n"))
	})

	t.Run("discards results below the minimum length", func(t *testing.T) {
		assert.Empty(t, cleanText("short"))
		assert.Empty(t, cleanText("   \n\n   "))
	})
}

func TestProcessFiles(t *testing.T) {
	log := logger.NewNop()

	buildUpload := func(t *testing.T, filename, contentType string, content []byte) []*multipart.FileHeader {
		t.Helper()
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)

		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		reader := multipart.NewReader(&buf, w.Boundary())
		form, err := reader.ReadForm(1 << 20)
		require.NoError(t, err)
		t.Cleanup(func() { form.RemoveAll() })
		return form.File["files"]
	}

	t.Run("oversized files are skipped", func(t *testing.T) {
		s := NewService(4, log)
		files := buildUpload(t, "big.pdf", "application/pdf", []byte(strings.Repeat("x", 100)))
		assert.Empty(t, s.ProcessFiles(files))
	})

	t.Run("unextractable files produce no output", func(t *testing.T) {
		s := NewService(10<<20, log)
		files := buildUpload(t, "photo.png", "image/png", []byte{0x89, 0x50})
		assert.Empty(t, s.ProcessFiles(files))
	})

	t.Run("empty batch produces no output", func(t *testing.T) {
		s := NewService(10<<20, log)
		assert.Empty(t, s.ProcessFiles(nil))
	})
}
