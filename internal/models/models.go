// -----------------------------------------------------------------------
// Conversion Models - JSON contract for PDF to JSON conversion output
// -----------------------------------------------------------------------

package models

import (
	"fmt"
)

// Method identifies the extraction strategy that produced a result.
// Values are the names of the underlying PDF libraries.
type Method string

const (
	// MethodPlumber extracts text, tables and page sizes (pdfplumber-go).
	MethodPlumber Method = "pdfplumber"
	// MethodPDFCPU extracts text, embedded image descriptors and page sizes (pdfcpu).
	MethodPDFCPU Method = "pdfcpu"
	// MethodLedongthuc extracts text and document metadata only (ledongthuc/pdf).
	MethodLedongthuc Method = "ledongthuc"
	// MethodAuto tries strategies in priority order, accepting the first success.
	MethodAuto Method = "auto"
)

// Methods returns the valid explicit method names plus "auto".
func Methods() []Method {
	return []Method{MethodPlumber, MethodPDFCPU, MethodLedongthuc, MethodAuto}
}

// PageSize holds the physical dimensions of a page in PDF points.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TableRecord is one detected table on a page. Data holds the full cell
// grid; a cell is nil when the detector could not assign text to it.
type TableRecord struct {
	TableIndex int         `json:"table_index"`
	Rows       int         `json:"rows"`
	Columns    int         `json:"columns"`
	Data       [][]*string `json:"data"`
}

// ImageRecord describes an embedded raster image referenced by a page.
// XRef is the object number of the image stream in the source document.
type ImageRecord struct {
	ImageIndex int `json:"image_index"`
	XRef       int `json:"xref"`
	Width      int `json:"width"`
	Height     int `json:"height"`
}

// PageRecord is the normalized per-page content record. Tables, Images and
// PageSize are only populated by the strategies capable of producing them;
// omitzero keeps absent capabilities out of the JSON while an empty,
// non-nil slice still serializes as [] for pages the capable strategy
// found nothing on.
type PageRecord struct {
	PageNumber int           `json:"page_number"`
	Text       string        `json:"text"`
	CharCount  int           `json:"char_count"`
	Tables     []TableRecord `json:"tables,omitzero"`
	Images     []ImageRecord `json:"images,omitzero"`
	PageSize   *PageSize     `json:"page_size,omitempty"`
}

// ExtractionResult is the normalized output of one extraction strategy.
type ExtractionResult struct {
	ExtractionMethod Method            `json:"extraction_method"`
	TotalPages       int               `json:"total_pages"`
	Metadata         map[string]string `json:"metadata"`
	Pages            []PageRecord      `json:"pages"`
}

// Validate checks the structural invariants every strategy must uphold.
func (r *ExtractionResult) Validate() error {
	if r.TotalPages != len(r.Pages) {
		return fmt.Errorf("total_pages %d does not match page count %d", r.TotalPages, len(r.Pages))
	}
	for i, page := range r.Pages {
		if page.PageNumber != i+1 {
			return fmt.Errorf("page at index %d has page_number %d, want %d", i, page.PageNumber, i+1)
		}
		if page.CharCount < 0 {
			return fmt.Errorf("page %d has negative char_count %d", page.PageNumber, page.CharCount)
		}
	}
	return nil
}

// ConversionInfo carries provenance for one conversion call.
type ConversionInfo struct {
	SourceFile     string `json:"source_file"`
	SourcePath     string `json:"source_path"`
	ConversionTime string `json:"conversion_time"`
	FileSize       int64  `json:"file_size"`
}

// ConversionEnvelope is the top-level unit written to JSON or returned to
// the caller. Created fresh per conversion, never mutated.
type ConversionEnvelope struct {
	Info    ConversionInfo    `json:"conversion_info"`
	Content *ExtractionResult `json:"content"`
}
