package merge

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/miku/drugxref/tabular"
)

type fakeLoader map[string]string

func (l fakeLoader) ReadTable(key, format string) (*tabular.Table, error) {
	data, ok := l[key]
	if !ok {
		return nil, fmt.Errorf("no such key: %s", key)
	}
	switch format {
	case "json":
		return tabular.FromJSON(strings.NewReader(data))
	default:
		return tabular.FromCSV(strings.NewReader(data))
	}
}

func TestMerge(t *testing.T) {
	loader := fakeLoader{
		"pubmed.csv":  "id,title,journal\n1,First,J1\n2,Second,J2\n",
		"pubmed.json": `[{"id": 11, "title": "Third", "journal": "J3", "extra": "x"}]`,
	}
	logger, hook := logtest.NewNullLogger()
	merged := Merge(loader, []Source{
		{Key: "pubmed.csv", Format: "csv"},
		{Key: "pubmed.json", Format: "json"},
		{Key: "missing.csv", Format: "csv"},
	}, logger)

	if merged.Len() != 3 {
		t.Fatalf("got %d rows, want 3", merged.Len())
	}
	if want := []string{"id", "title", "journal", "extra"}; !reflect.DeepEqual(merged.Columns, want) {
		t.Errorf("columns: got %v, want %v", merged.Columns, want)
	}
	// Source order preserved.
	if merged.Rows[0]["title"].Str != "First" || merged.Rows[2]["title"].Str != "Third" {
		t.Errorf("row order not preserved: %v", merged.Rows)
	}
	// CSV rows have no value for the JSON-only column.
	if merged.Rows[0]["extra"].Valid {
		t.Errorf("missing column should be null")
	}
	// The failing source was skipped and logged, not fatal.
	var logged bool
	for _, e := range hook.AllEntries() {
		if e.Data["source"] == "missing.csv" {
			logged = true
		}
	}
	if !logged {
		t.Errorf("failed source not logged")
	}
}

func TestMergeAllSourcesFail(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	merged := Merge(fakeLoader{}, []Source{{Key: "a", Format: "csv"}}, logger)
	if merged.Len() != 0 {
		t.Errorf("expected empty table")
	}
}
