package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/extractors"
	"github.com/ternarybob/verto/internal/interfaces"
	"github.com/ternarybob/verto/internal/models"
)

// pdfFileBuilder assembles a minimal but well-formed PDF, recording each
// object's byte offset so the cross-reference table is exact.
type pdfFileBuilder struct {
	buf     bytes.Buffer
	offsets []int
}

func (b *pdfFileBuilder) addObj(body string) {
	b.offsets = append(b.offsets, b.buf.Len())
	fmt.Fprintf(&b.buf, "%d 0 obj\n%s\nendobj\n", len(b.offsets), body)
}

func (b *pdfFileBuilder) finish() []byte {
	xrefPos := b.buf.Len()
	fmt.Fprintf(&b.buf, "xref\n0 %d\n", len(b.offsets)+1)
	b.buf.WriteString("0000000000 65535 f \n")
	for _, off := range b.offsets {
		fmt.Fprintf(&b.buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b.buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(b.offsets)+1, xrefPos)
	return b.buf.Bytes()
}

// writeDocument produces a PDF with one page per entry of pageTexts.
// Texts must not contain parentheses or backslashes.
func writeDocument(t *testing.T, pageTexts []string) string {
	t.Helper()

	b := &pdfFileBuilder{}
	b.buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pageTexts))
	for i := range pageTexts {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	b.addObj("<< /Type /Catalog /Pages 2 0 R >>")
	b.addObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>",
		strings.Join(kids, " "), len(pageTexts)))

	for i, text := range pageTexts {
		b.addObj(fmt.Sprintf(
			"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> /Contents %d 0 R >>",
			4+2*i))
		content := fmt.Sprintf("BT\n(%s) Tj\nET", text)
		b.addObj(fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	}

	path := filepath.Join(t.TempDir(), "document.pdf")
	if err := os.WriteFile(path, b.finish(), 0644); err != nil {
		t.Fatalf("Failed to write document: %v", err)
	}
	return path
}

func TestService_Convert_Document(t *testing.T) {
	pageTexts := []string{
		"First page body",
		"Second page body",
		"Third page body",
	}
	pdfPath := writeDocument(t, pageTexts)

	service := &Service{
		logger: arbor.NewLogger(),
		extractors: []interfaces.Extractor{
			extractors.NewPDFCPUExtractor(arbor.NewLogger()),
		},
	}

	outputPath := filepath.Join(t.TempDir(), "document.json")
	envelope, err := service.Convert(pdfPath, models.MethodPDFCPU, outputPath, true)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}

	content := envelope.Content
	if err := content.Validate(); err != nil {
		t.Errorf("Result violates invariants: %v", err)
	}
	if content.ExtractionMethod != models.MethodPDFCPU {
		t.Errorf("ExtractionMethod = %s, want %s", content.ExtractionMethod, models.MethodPDFCPU)
	}
	if content.TotalPages != len(pageTexts) {
		t.Fatalf("TotalPages = %d, want %d", content.TotalPages, len(pageTexts))
	}

	for i, want := range pageTexts {
		page := content.Pages[i]
		if page.PageNumber != i+1 {
			t.Errorf("Page %d has page_number %d, want %d", i, page.PageNumber, i+1)
		}
		if page.Text != want {
			t.Errorf("Page %d text = %q, want %q", i+1, page.Text, want)
		}
		if page.CharCount != len([]rune(want)) {
			t.Errorf("Page %d char_count = %d, want %d", i+1, page.CharCount, len([]rune(want)))
		}
		if page.PageSize == nil || page.PageSize.Width != 612 || page.PageSize.Height != 792 {
			t.Errorf("Page %d size = %+v, want 612x792", i+1, page.PageSize)
		}
		if page.Images == nil {
			t.Errorf("Page %d Images is nil, want empty slice", i+1)
		} else if len(page.Images) != 0 {
			t.Errorf("Page %d has %d images, want 0", i+1, len(page.Images))
		}
	}

	// No Info dictionary: every metadata field falls back to "".
	for _, key := range []string{"title", "author", "subject", "creator", "producer"} {
		v, ok := content.Metadata[key]
		if !ok {
			t.Errorf("Metadata missing key %q", key)
		}
		if v != "" {
			t.Errorf("Metadata[%q] = %q, want empty", key, v)
		}
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Output file not written: %v", err)
	}
	var reread models.ConversionEnvelope
	if err := json.Unmarshal(data, &reread); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}
	if reread.Content.TotalPages != len(pageTexts) {
		t.Errorf("Persisted TotalPages = %d, want %d", reread.Content.TotalPages, len(pageTexts))
	}
	// The empty image lists survive as [] rather than being dropped.
	if !strings.Contains(string(data), `"images": []`) {
		t.Errorf("Persisted page records lack empty image arrays:\n%s", data)
	}
}

func TestService_Convert_DocumentAuto(t *testing.T) {
	pdfPath := writeDocument(t, []string{"Only page"})

	failing := &fakeExtractor{method: models.MethodPlumber, err: fmt.Errorf("no text layer")}
	service := &Service{
		logger: arbor.NewLogger(),
		extractors: []interfaces.Extractor{
			failing,
			extractors.NewPDFCPUExtractor(arbor.NewLogger()),
		},
	}

	envelope, err := service.Convert(pdfPath, models.MethodAuto, "", true)
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if envelope.Content.ExtractionMethod != models.MethodPDFCPU {
		t.Errorf("ExtractionMethod = %s, want %s after fallback", envelope.Content.ExtractionMethod, models.MethodPDFCPU)
	}
	if failing.calls != 1 {
		t.Errorf("First strategy called %d times, want 1", failing.calls)
	}
	if envelope.Content.Pages[0].Text != "Only page" {
		t.Errorf("Page text = %q, want %q", envelope.Content.Pages[0].Text, "Only page")
	}
}
