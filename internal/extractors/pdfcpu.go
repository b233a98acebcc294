// -----------------------------------------------------------------------
// PDFCPU Extractor - text, embedded image descriptors and page sizes
// -----------------------------------------------------------------------

package extractors

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/interfaces"
	"github.com/ternarybob/verto/internal/models"
)

// infoDictKeys maps PDF info dictionary entries to metadata field names.
var infoDictKeys = map[string]string{
	"Title":    "title",
	"Author":   "author",
	"Subject":  "subject",
	"Creator":  "creator",
	"Producer": "producer",
}

// PDFCPUExtractor is the image-capable strategy. Besides per-page text it
// enumerates the raster images each page references (object number, pixel
// dimensions) and reports the page's physical size.
type PDFCPUExtractor struct {
	logger arbor.ILogger
}

// Compile-time interface assertion
var _ interfaces.Extractor = (*PDFCPUExtractor)(nil)

// NewPDFCPUExtractor creates the pdfcpu-backed extractor
func NewPDFCPUExtractor(logger arbor.ILogger) *PDFCPUExtractor {
	return &PDFCPUExtractor{logger: logger}
}

func (e *PDFCPUExtractor) Method() models.Method {
	return models.MethodPDFCPU
}

func (e *PDFCPUExtractor) Extract(pdfPath string) (*models.ExtractionResult, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}

	metadata := infoDictMetadata(ctx)

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	pages := make([]models.PageRecord, 0, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		raw, err := extractPageText(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageNr, err)
		}
		text, charCount := pageText(raw)

		record := models.PageRecord{
			PageNumber: pageNr,
			Text:       text,
			CharCount:  charCount,
			Images:     pageImages(ctx, pageNr),
		}
		if pageNr-1 < len(dims) {
			record.PageSize = &models.PageSize{
				Width:  dims[pageNr-1].Width,
				Height: dims[pageNr-1].Height,
			}
		}
		pages = append(pages, record)
	}

	return &models.ExtractionResult{
		ExtractionMethod: models.MethodPDFCPU,
		TotalPages:       len(pages),
		Metadata:         metadata,
		Pages:            pages,
	}, nil
}

// infoDictMetadata reads the document info dictionary, falling back to
// empty strings when the dictionary or individual entries are absent.
func infoDictMetadata(ctx *model.Context) map[string]string {
	metadata := metadataMap("", "", "", "", "")

	if ctx.Info == nil {
		return metadata
	}
	d, err := ctx.DereferenceDict(*ctx.Info)
	if err != nil || d == nil {
		return metadata
	}

	for key, field := range infoDictKeys {
		if s := d.StringEntry(key); s != nil {
			metadata[field] = *s
		}
	}
	return metadata
}

// extractPageText decodes a single page's content stream into text.
func extractPageText(ctx *model.Context, pageNr int) (string, error) {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return "", err
	}
	if r == nil {
		return "", nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return textFromContentStream(data), nil
}

// pageImages enumerates the image XObjects a page references, in object
// number order so repeated runs are deterministic.
func pageImages(ctx *model.Context, pageNr int) []models.ImageRecord {
	images := make([]models.ImageRecord, 0)
	if ctx.Optimize == nil {
		return images
	}

	objNrs := pdfcpu.ImageObjNrs(ctx, pageNr)
	sort.Ints(objNrs)

	for _, objNr := range objNrs {
		entry, ok := ctx.Table[objNr]
		if !ok || entry == nil {
			continue
		}
		sd, ok := entry.Object.(types.StreamDict)
		if !ok {
			continue
		}
		record := models.ImageRecord{
			ImageIndex: len(images),
			XRef:       objNr,
		}
		if w, found := sd.Find("Width"); found {
			if n, ok := w.(types.Integer); ok {
				record.Width = n.Value()
			}
		}
		if h, found := sd.Find("Height"); found {
			if n, ok := h.(types.Integer); ok {
				record.Height = n.Value()
			}
		}
		images = append(images, record)
	}
	return images
}
