// -----------------------------------------------------------------------
// Ledongthuc Extractor - plain text and document metadata only
// -----------------------------------------------------------------------

package extractors

import (
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/interfaces"
	"github.com/ternarybob/verto/internal/models"
)

// LedongthucExtractor is the simplest strategy: per-page plain text plus
// the standard info dictionary fields. It performs no structural analysis,
// which makes it the most forgiving fallback for documents the richer
// strategies choke on.
type LedongthucExtractor struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Extractor = (*LedongthucExtractor)(nil)

// NewLedongthucExtractor creates the ledongthuc/pdf-backed extractor
func NewLedongthucExtractor(logger arbor.ILogger) *LedongthucExtractor {
	return &LedongthucExtractor{logger: logger}
}

func (e *LedongthucExtractor) Method() models.Method {
	return models.MethodLedongthuc
}

func (e *LedongthucExtractor) Extract(pdfPath string) (*models.ExtractionResult, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	metadata := trailerMetadata(r)

	pageCount := r.NumPage()
	pages := make([]models.PageRecord, 0, pageCount)

	for i := 1; i <= pageCount; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			// Keep page numbering contiguous for unreadable pages.
			pages = append(pages, models.PageRecord{PageNumber: i})
			continue
		}

		raw, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", i, err)
		}

		text, charCount := pageText(raw)
		pages = append(pages, models.PageRecord{
			PageNumber: i,
			Text:       text,
			CharCount:  charCount,
		})
	}

	return &models.ExtractionResult{
		ExtractionMethod: models.MethodLedongthuc,
		TotalPages:       len(pages),
		Metadata:         metadata,
		Pages:            pages,
	}, nil
}

// trailerMetadata reads the trailer's Info dictionary. Missing dictionary
// or fields fall back to empty strings.
func trailerMetadata(r *pdf.Reader) map[string]string {
	get := func(info pdf.Value, key string) string {
		v := info.Key(key)
		if v.Kind() != pdf.String {
			return ""
		}
		return v.Text()
	}

	info := r.Trailer().Key("Info")
	return metadataMap(
		get(info, "Title"),
		get(info, "Author"),
		get(info, "Subject"),
		get(info, "Creator"),
		get(info, "Producer"),
	)
}
