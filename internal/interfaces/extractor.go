// -----------------------------------------------------------------------
// Extractor Interface - one extraction strategy over a PDF document
// -----------------------------------------------------------------------

package interfaces

import (
	"github.com/ternarybob/verto/internal/models"
)

// Extractor is one concrete method of pulling structured content out of a
// PDF, backed by a distinct parsing library. Extractors do not verify the
// path exists; that is the converter's responsibility. Any failure of the
// underlying library is returned as an error for the converter to interpret.
type Extractor interface {
	// Method returns the strategy's identity, stamped into results.
	Method() models.Method

	// Extract maps the PDF at pdfPath to a fully populated result.
	// All file and document handles are released before it returns.
	Extract(pdfPath string) (*models.ExtractionResult, error)
}
