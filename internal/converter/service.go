// -----------------------------------------------------------------------
// Converter Service - strategy selection, fallback and envelope assembly
// -----------------------------------------------------------------------

package converter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/extractors"
	"github.com/ternarybob/verto/internal/interfaces"
	"github.com/ternarybob/verto/internal/models"
)

// Service orchestrates the extraction strategies. The extractor slice is
// kept in auto-fallback priority order: table-capable first, then
// image-capable, then plain text. The order is preserved from the tool
// this replaces; consumers depend on it.
type Service struct {
	logger     arbor.ILogger
	extractors []interfaces.Extractor
}

// Compile-time interface assertion
var _ interfaces.Converter = (*Service)(nil)

// NewService creates a converter service wired with all three strategies
func NewService(logger arbor.ILogger) *Service {
	return &Service{
		logger: logger,
		extractors: []interfaces.Extractor{
			extractors.NewPlumberExtractor(logger),
			extractors.NewPDFCPUExtractor(logger),
			extractors.NewLedongthucExtractor(logger),
		},
	}
}

// Convert runs one conversion: validate the method, check the input file
// exists, dispatch to the selected strategy (or the fallback chain), wrap
// the result in a provenance envelope and optionally persist it as JSON.
func (s *Service) Convert(pdfPath string, method models.Method, outputPath string, pretty bool) (*models.ConversionEnvelope, error) {
	// Method validation happens before any file system access.
	if method != models.MethodAuto {
		if _, ok := s.extractorFor(method); !ok {
			return nil, fmt.Errorf("%w: %q (valid methods: %v)", ErrInvalidMethod, method, models.Methods())
		}
	}

	info, err := os.Stat(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, pdfPath)
	}

	s.logger.Info().
		Str("path", pdfPath).
		Str("method", string(method)).
		Msg("Converting PDF")

	var result *models.ExtractionResult
	if method == models.MethodAuto {
		result, err = s.extractAuto(pdfPath)
	} else {
		result, err = s.extractWith(method, pdfPath)
	}
	if err != nil {
		return nil, err
	}

	envelope := &models.ConversionEnvelope{
		Info: models.ConversionInfo{
			SourceFile:     filepath.Base(pdfPath),
			SourcePath:     pdfPath,
			ConversionTime: time.Now().Format(time.RFC3339),
			FileSize:       info.Size(),
		},
		Content: result,
	}

	if outputPath != "" {
		if err := s.writeJSON(envelope, outputPath, pretty); err != nil {
			return nil, err
		}
		s.logger.Info().
			Str("output", outputPath).
			Msg("JSON file written")
	}

	return envelope, nil
}

// extractAuto tries each strategy in priority order, accepting the first
// success. Individual failures are logged and swallowed; only exhausting
// every strategy is terminal.
func (s *Service) extractAuto(pdfPath string) (*models.ExtractionResult, error) {
	for _, extractor := range s.extractors {
		result, err := extractor.Extract(pdfPath)
		if err != nil {
			s.logger.Warn().
				Str("method", string(extractor.Method())).
				Err(err).
				Msg("Extraction method failed, trying next")
			continue
		}
		return result, nil
	}
	return nil, ErrAllMethodsFailed
}

// extractWith runs exactly one strategy; its failure is the conversion's failure.
func (s *Service) extractWith(method models.Method, pdfPath string) (*models.ExtractionResult, error) {
	extractor, ok := s.extractorFor(method)
	if !ok {
		return nil, fmt.Errorf("%w: %q (valid methods: %v)", ErrInvalidMethod, method, models.Methods())
	}

	result, err := extractor.Extract(pdfPath)
	if err != nil {
		s.logger.Warn().
			Str("method", string(method)).
			Err(err).
			Msg("Extraction method failed")
		return nil, fmt.Errorf("extraction with %s failed: %w", method, err)
	}
	return result, nil
}

func (s *Service) extractorFor(method models.Method) (interfaces.Extractor, bool) {
	for _, extractor := range s.extractors {
		if extractor.Method() == method {
			return extractor, true
		}
	}
	return nil, false
}

// writeJSON persists the envelope all-or-nothing: it is encoded fully in
// memory and written in a single call, so a failure leaves no partial file
// behind the caller might mistake for a valid result.
func (s *Service) writeJSON(envelope *models.ConversionEnvelope, outputPath string, pretty bool) error {
	data, err := MarshalEnvelope(envelope, pretty)
	if err != nil {
		return fmt.Errorf("failed to encode envelope: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputPath, err)
	}
	return nil
}

// MarshalEnvelope renders the envelope as UTF-8 JSON. Non-ASCII characters
// are written literally rather than escaped; pretty selects two-space
// indentation, otherwise the output is a single compact line.
func MarshalEnvelope(envelope *models.ConversionEnvelope, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(envelope); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DefaultOutputPath derives the CLI's default output file name: the input
// basename with a .json extension, placed in outputDir (current directory
// when empty).
func DefaultOutputPath(pdfPath, outputDir string) string {
	base := filepath.Base(pdfPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)] + ".json"
	if outputDir == "" {
		return name
	}
	return filepath.Join(outputDir, name)
}
