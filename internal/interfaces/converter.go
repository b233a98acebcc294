package interfaces

import (
	"github.com/ternarybob/verto/internal/models"
)

// Converter orchestrates extraction strategy selection and envelope
// construction. Implemented by the converter service; handlers depend on
// this interface so tests can substitute a stub.
type Converter interface {
	// Convert runs the selected strategy (or the auto fallback chain) over
	// the PDF at pdfPath and returns the stamped envelope. When outputPath
	// is non-empty the envelope is also persisted as JSON, indented when
	// pretty is true. The envelope is returned whether or not it was
	// persisted.
	Convert(pdfPath string, method models.Method, outputPath string, pretty bool) (*models.ConversionEnvelope, error)
}
