package gsheets

import "testing"

func TestRecordsFromRows(t *testing.T) {
	rows := [][]interface{}{
		{"pitch", " loop ", "velocity"},
		{"60", 1.5, 100},
		{"62"},
	}
	records := recordsFromRows(rows)
	if len(records) != 2 {
		t.Fatalf("records = %d, want 2", len(records))
	}
	if records[0]["pitch"] != "60" || records[0]["loop"] != "1.5" || records[0]["velocity"] != "100" {
		t.Fatalf("record 0 = %v", records[0])
	}
	// Header cells are trimmed, short rows padded with empties.
	if got, ok := records[1]["loop"]; !ok || got != "" {
		t.Fatalf("short row loop = %q (present=%v), want empty string", got, ok)
	}
}

func TestRecordsFromRowsSkipsBlankHeaderColumns(t *testing.T) {
	rows := [][]interface{}{
		{"pitch", ""},
		{"60", "stray"},
	}
	records := recordsFromRows(rows)
	if len(records[0]) != 1 {
		t.Fatalf("record = %v, want only the pitch column", records[0])
	}
}

func TestRecordsFromRowsHeaderOnly(t *testing.T) {
	if records := recordsFromRows([][]interface{}{{"pitch"}}); records != nil {
		t.Fatalf("records = %v, want nil", records)
	}
	if records := recordsFromRows(nil); records != nil {
		t.Fatalf("records = %v, want nil", records)
	}
}
