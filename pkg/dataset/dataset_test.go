package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := `neighborhood,vacant_units,avg_assessed_value,years_vacant_avg,ward
Eastside,450,85000,4.5,3
Riverview,120,210000,1.5,7
`
	ds, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ds.Rows))
	}
	if ds.Dropped != 0 {
		t.Errorf("dropped = %d, want 0", ds.Dropped)
	}

	r := ds.Rows[0]
	if r.Name != "Eastside" || r.VacantUnits != 450 || r.AvgAssessedValue != 85000 || r.YearsVacantAvg != 4.5 {
		t.Errorf("row 0 = %+v", r)
	}
	if ds.Rows[1].Name != "Riverview" {
		t.Errorf("row order not preserved: %+v", ds.Rows)
	}
}

func TestParseColumnOrderIndependent(t *testing.T) {
	input := "years_vacant_avg,neighborhood,avg_assessed_value,vacant_units\n2,Central,200000,100\n"
	ds, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	r := ds.Rows[0]
	if r.Name != "Central" || r.VacantUnits != 100 || r.AvgAssessedValue != 200000 || r.YearsVacantAvg != 2 {
		t.Errorf("row = %+v", r)
	}
}

func TestParseDropsInvalidRows(t *testing.T) {
	input := `neighborhood,vacant_units,avg_assessed_value,years_vacant_avg
Good,10,100000,2
,5,100000,2
NoUnits,,100000,2
Text,ten,100000,2
Negative,5,-100,2
Short,5
NotANumber,5,NaN,1
Also Good, 3 ,90000,0.5
`
	ds, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("rows = %d, want 2: %+v", len(ds.Rows), ds.Rows)
	}
	if ds.Rows[1].Name != "Also Good" || ds.Rows[1].VacantUnits != 3 {
		t.Errorf("row 1 = %+v", ds.Rows[1])
	}
	if ds.Dropped != 6 {
		t.Errorf("dropped = %d, want 6", ds.Dropped)
	}
	if len(ds.Report.Warnings) != 6 {
		t.Errorf("warnings = %d, want 6", len(ds.Report.Warnings))
	}
	if !ds.Report.Valid {
		t.Error("dropped rows should not invalidate the report")
	}
	if len(ds.Report.Info) != 1 || ds.Report.Info[0].Message != "Dropped 6 rows with missing/invalid data" {
		t.Errorf("unexpected info: %+v", ds.Report.Info)
	}
	if first := ds.Report.Warnings[0]; first.Line != 3 || !strings.Contains(first.Message, "line 3") {
		t.Errorf("first warning should cite line 3: %+v", first)
	}
}

func TestParseMissingColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("neighborhood,vacant_units\nA,1\n"))
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if strings.Join(missing.Columns, ",") != "avg_assessed_value,years_vacant_avg" {
		t.Errorf("missing = %v", missing.Columns)
	}
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	ds, err := Parse(strings.NewReader("neighborhood,vacant_units,avg_assessed_value,years_vacant_avg\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ds.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(ds.Rows))
	}
}

func TestParseByteOrderMark(t *testing.T) {
	input := "\ufeffneighborhood,vacant_units,avg_assessed_value,years_vacant_avg\nA,1,2,3\n"
	ds, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(ds.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(ds.Rows))
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "neighborhoods.csv")
	content := "neighborhood,vacant_units,avg_assessed_value,years_vacant_avg\nA,1,2,3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	ds, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(ds.Rows) != 1 {
		t.Errorf("rows = %d, want 1", len(ds.Rows))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}
}
