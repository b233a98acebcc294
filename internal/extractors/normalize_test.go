package extractors

import (
	"testing"
)

func TestPageText(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantText  string
		wantCount int
	}{
		{"plain text", "hello", "hello", 5},
		{"surrounding whitespace trimmed, count untrimmed", "  hello \n", "hello", 9},
		{"empty input", "", "", 0},
		{"whitespace only", "   ", "", 3},
		{"multibyte runes counted once", "日本語", "日本語", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, count := pageText(tt.raw)
			if text != tt.wantText {
				t.Errorf("pageText(%q) text = %q, want %q", tt.raw, text, tt.wantText)
			}
			if count != tt.wantCount {
				t.Errorf("pageText(%q) count = %d, want %d", tt.raw, count, tt.wantCount)
			}
		})
	}
}

func TestMetadataMap(t *testing.T) {
	m := metadataMap("T", "", "", "C", "")

	want := map[string]string{
		"title":    "T",
		"author":   "",
		"subject":  "",
		"creator":  "C",
		"producer": "",
	}
	if len(m) != len(want) {
		t.Fatalf("metadataMap has %d keys, want %d", len(m), len(want))
	}
	for k, v := range want {
		got, ok := m[k]
		if !ok {
			t.Errorf("metadataMap missing key %q", k)
		}
		if got != v {
			t.Errorf("metadataMap[%q] = %q, want %q", k, got, v)
		}
	}
}

func TestTableRecord(t *testing.T) {
	t.Run("empty grid is dropped", func(t *testing.T) {
		_, ok := tableRecord(0, nil)
		if ok {
			t.Error("Expected empty grid to be dropped")
		}
		_, ok = tableRecord(0, [][]string{})
		if ok {
			t.Error("Expected zero-row grid to be dropped")
		}
	})

	t.Run("cells convert with empty strings as nil", func(t *testing.T) {
		record, ok := tableRecord(2, [][]string{
			{"Name", "Qty"},
			{"Widget", ""},
		})
		if !ok {
			t.Fatal("Expected table to be kept")
		}
		if record.TableIndex != 2 {
			t.Errorf("TableIndex = %d, want 2", record.TableIndex)
		}
		if record.Rows != 2 || record.Columns != 2 {
			t.Errorf("Dimensions = %dx%d, want 2x2", record.Rows, record.Columns)
		}
		if record.Data[0][0] == nil || *record.Data[0][0] != "Name" {
			t.Error("Header cell lost")
		}
		if record.Data[1][1] != nil {
			t.Error("Empty cell should be nil")
		}
	})

	t.Run("cell pointers are independent of the loop variable", func(t *testing.T) {
		record, ok := tableRecord(0, [][]string{{"a", "b", "c"}})
		if !ok {
			t.Fatal("Expected table to be kept")
		}
		got := []string{*record.Data[0][0], *record.Data[0][1], *record.Data[0][2]}
		want := []string{"a", "b", "c"}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Cell %d = %q, want %q", i, got[i], want[i])
			}
		}
	})
}
