package extractors

import (
	"strings"

	"github.com/ternarybob/verto/internal/models"
)

// pageText normalizes raw extracted text into the page record shape:
// the stored text is whitespace-trimmed, the char count reflects the
// untrimmed text.
func pageText(raw string) (text string, charCount int) {
	return strings.TrimSpace(raw), len([]rune(raw))
}

// metadataMap builds the standard document metadata mapping. Absent
// fields stay as empty strings rather than being dropped, so every
// strategy reports the same key set.
func metadataMap(title, author, subject, creator, producer string) map[string]string {
	return map[string]string{
		"title":    title,
		"author":   author,
		"subject":  subject,
		"creator":  creator,
		"producer": producer,
	}
}

// tableRecord converts a detected cell grid into a TableRecord. Tables
// with no rows carry no information and are dropped (ok=false). Cells
// the detector left empty become null in the output grid.
func tableRecord(index int, cells [][]string) (models.TableRecord, bool) {
	if len(cells) == 0 {
		return models.TableRecord{}, false
	}

	data := make([][]*string, len(cells))
	for r, row := range cells {
		data[r] = make([]*string, len(row))
		for c := range row {
			if row[c] == "" {
				continue
			}
			cell := row[c]
			data[r][c] = &cell
		}
	}

	return models.TableRecord{
		TableIndex: index,
		Rows:       len(cells),
		Columns:    len(cells[0]),
		Data:       data,
	}, true
}
