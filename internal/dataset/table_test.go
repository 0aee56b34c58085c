package dataset_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tagmark/internal/dataset"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadReadsHeaderAndRows(t *testing.T) {
	path := writeCSV(t, "id,text,label\n1,hello world,\n2,bye,\n")

	table, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if table.Len() != 2 {
		t.Fatalf("unexpected row count: %d", table.Len())
	}
	if got := table.Value(0, "text"); got != "hello world" {
		t.Fatalf("unexpected text: %q", got)
	}
	columns := table.Columns()
	if len(columns) != 3 || columns[0] != "id" || columns[2] != "label" {
		t.Fatalf("unexpected columns: %v", columns)
	}
}

func TestLoadRejectsEmptyFile(t *testing.T) {
	path := writeCSV(t, "")
	if _, err := dataset.Load(path); err == nil {
		t.Fatal("expected error for file without header")
	}
}

func TestLoadRejectsRaggedRows(t *testing.T) {
	path := writeCSV(t, "id,text\n1,hello,extra\n")
	if _, err := dataset.Load(path); err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestLoadOrNewFallsBackToEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.csv")

	table, err := dataset.LoadOrNew(path, []string{"id", "text", "label"})
	if err != nil {
		t.Fatalf("LoadOrNew returned error: %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d rows", table.Len())
	}
	if !table.HasColumn("label") {
		t.Fatal("expected label column")
	}
}

func TestSaveRewritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marked.csv")
	table := dataset.New([]string{"id", "text", "label"})
	table.Append(dataset.Row{"id": "1", "text": "hello, world", "label": "pos"})

	if err := table.Save(path); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	table.Append(dataset.Row{"id": "2", "text": "bye", "label": "neg"})
	if err := table.Save(path); err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	reloaded, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Len() != 2 {
		t.Fatalf("unexpected row count after rewrite: %d", reloaded.Len())
	}
	if got := reloaded.Value(0, "text"); got != "hello, world" {
		t.Fatalf("quoted cell did not round-trip: %q", got)
	}
}

func TestAppendDropsUnknownColumns(t *testing.T) {
	table := dataset.New([]string{"id", "text"})
	table.Append(dataset.Row{"id": "1", "text": "hi", "rogue": "x"})

	row := table.Row(0)
	if _, ok := row["rogue"]; ok {
		t.Fatal("unexpected rogue column in stored row")
	}
}

func TestRemoveLast(t *testing.T) {
	table := dataset.New([]string{"id"})
	if _, ok := table.RemoveLast(); ok {
		t.Fatal("expected RemoveLast to fail on empty table")
	}
	table.Append(dataset.Row{"id": "1"})
	table.Append(dataset.Row{"id": "2"})

	last, ok := table.RemoveLast()
	if !ok || last["id"] != "2" {
		t.Fatalf("unexpected removed row: %v %v", last, ok)
	}
	if table.Len() != 1 {
		t.Fatalf("unexpected length: %d", table.Len())
	}
}

func TestEnsureColumnBackfillsRows(t *testing.T) {
	path := writeCSV(t, "id,text\n1,hi\n")
	table, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	table.EnsureColumn("label")
	if !table.HasColumn("label") {
		t.Fatal("expected label column")
	}
	if got := table.Value(0, "label"); got != "" {
		t.Fatalf("expected empty backfill, got %q", got)
	}

	table.EnsureColumn("label")
	if len(table.Columns()) != 3 {
		t.Fatalf("EnsureColumn duplicated column: %v", table.Columns())
	}
}

func TestFilterEqualAndMembership(t *testing.T) {
	path := writeCSV(t, "id,text,label\n1,a,keep\n2,b,drop\n3,c,keep\n")
	table, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	filtered := table.FilterEqual("label", "keep")
	if filtered.Len() != 2 {
		t.Fatalf("unexpected filtered length: %d", filtered.Len())
	}
	if !filtered.ContainsValue("id", "3") || filtered.ContainsValue("id", "2") {
		t.Fatal("unexpected membership after filter")
	}

	counts := table.CountValues("label")
	if counts["keep"] != 2 || counts["drop"] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestMissingColumns(t *testing.T) {
	table := dataset.New([]string{"id", "text"})
	missing := table.MissingColumns("id", "title", "label")
	if strings.Join(missing, ",") != "title,label" {
		t.Fatalf("unexpected missing columns: %v", missing)
	}
}

func TestRowReturnsCopy(t *testing.T) {
	table := dataset.New([]string{"id", "label"})
	table.Append(dataset.Row{"id": "1", "label": ""})

	row := table.Row(0)
	row["label"] = "pos"
	if got := table.Value(0, "label"); got != "" {
		t.Fatalf("mutating a returned row leaked into the table: %q", got)
	}
}
