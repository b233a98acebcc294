// -----------------------------------------------------------------------
// Plumber Extractor - text, tables and page sizes via pdfplumber-go
// -----------------------------------------------------------------------

package extractors

import (
	"fmt"

	pdfplumber "github.com/allieus/pdfplumber-go/pkg/pdf"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/interfaces"
	"github.com/ternarybob/verto/internal/models"
)

// PlumberExtractor is the table-capable strategy. It extracts per-page
// text, detected tables with their full cell grids, and page dimensions.
type PlumberExtractor struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Extractor = (*PlumberExtractor)(nil)

// NewPlumberExtractor creates the pdfplumber-backed extractor
func NewPlumberExtractor(logger arbor.ILogger) *PlumberExtractor {
	return &PlumberExtractor{logger: logger}
}

func (e *PlumberExtractor) Method() models.Method {
	return models.MethodPlumber
}

// Extract opens the document, reads metadata, then walks every page
// collecting text, non-empty tables and the page size.
func (e *PlumberExtractor) Extract(pdfPath string) (*models.ExtractionResult, error) {
	doc, err := pdfplumber.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	meta := doc.GetMetadata()
	metadata := metadataMap(meta.Title, meta.Author, meta.Subject, meta.Creator, meta.Producer)

	pageCount := doc.PageCount()
	pages := make([]models.PageRecord, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		page, err := doc.GetPage(i)
		if err != nil {
			return nil, fmt.Errorf("failed to load page %d: %w", i+1, err)
		}

		text, charCount := pageText(page.ExtractText())

		tables := make([]models.TableRecord, 0)
		for _, table := range page.ExtractTables() {
			record, ok := tableRecord(len(tables), table.Rows)
			if !ok {
				continue
			}
			tables = append(tables, record)
		}

		pages = append(pages, models.PageRecord{
			PageNumber: i + 1,
			Text:       text,
			CharCount:  charCount,
			Tables:     tables,
			PageSize: &models.PageSize{
				Width:  page.GetWidth(),
				Height: page.GetHeight(),
			},
		})
	}

	return &models.ExtractionResult{
		ExtractionMethod: models.MethodPlumber,
		TotalPages:       len(pages),
		Metadata:         metadata,
		Pages:            pages,
	}, nil
}
