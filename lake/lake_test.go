package lake

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/miku/drugxref/graph"
	"github.com/miku/drugxref/tabular"
)

func testLake(t *testing.T) (*Lake, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	return New(t.TempDir(), logger), hook
}

func sampleTable() *tabular.Table {
	table := tabular.New("id", "title", "journal")
	table.Append(tabular.Record{
		"id":      tabular.String("1"),
		"title":   tabular.String("A title, with a comma"),
		"journal": tabular.String("Journal A"),
	})
	table.Append(tabular.Record{
		"id":      tabular.Null(),
		"title":   tabular.String("Second"),
		"journal": tabular.String("Journal B"),
	})
	return table
}

func TestTableRoundTrip(t *testing.T) {
	for _, key := range []string{
		"clean/table.csv",
		"clean/table.csv.gz",
		"clean/table.csv.zst",
	} {
		t.Run(key, func(t *testing.T) {
			l, _ := testLake(t)
			if err := l.WriteTable(key, sampleTable(), false); err != nil {
				t.Fatalf("write: %v", err)
			}
			back, err := l.ReadTable(key, "")
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if back.Len() != 2 {
				t.Fatalf("got %d rows, want 2", back.Len())
			}
			if back.Rows[0]["title"].Str != "A title, with a comma" {
				t.Errorf("got %q", back.Rows[0]["title"].Str)
			}
			if back.Rows[1]["id"].Valid {
				t.Errorf("null id should survive the round trip")
			}
		})
	}
}

func TestOverwriteGuard(t *testing.T) {
	l, hook := testLake(t)
	if err := l.WriteTable("x.csv", sampleTable(), false); err != nil {
		t.Fatalf("write: %v", err)
	}
	before, err := os.ReadFile(l.Path("x.csv"))
	if err != nil {
		t.Fatal(err)
	}

	// A second guarded write is a logged no-op, not an error.
	other := tabular.New("other")
	other.Append(tabular.Record{"other": tabular.String("y")})
	if err := l.WriteTable("x.csv", other, false); err != nil {
		t.Fatalf("guarded write should not error: %v", err)
	}
	after, err := os.ReadFile(l.Path("x.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("guarded write changed the destination")
	}
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Data["key"] == "x.csv" {
			var wce *WriteConflictError
			if errors.As(e.Data[logrus.ErrorKey].(error), &wce) {
				warned = true
			}
		}
	}
	if !warned {
		t.Errorf("conflict not logged as WriteConflictError")
	}

	// With overwrite requested the write goes through.
	if err := l.WriteTable("x.csv", other, true); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	replaced, _ := os.ReadFile(l.Path("x.csv"))
	if !strings.HasPrefix(string(replaced), "other") {
		t.Errorf("overwrite did not replace content: %q", string(replaced))
	}
}

func TestReadTableMissingKey(t *testing.T) {
	l, _ := testLake(t)
	_, err := l.ReadTable("nope.csv", "csv")
	if err == nil {
		t.Fatalf("expected error")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected LoadError, got %T", err)
	}
	if le.Key != "nope.csv" {
		t.Errorf("got key %s", le.Key)
	}
}

func TestReadTableJSON(t *testing.T) {
	l, _ := testLake(t)
	w, err := l.Create("raw/pubmed.json")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(`[{"id": 9.0, "title": "T", "journal": "J"}]`)); err != nil {
		t.Fatal(err)
	}
	w.Close()
	table, err := l.ReadTable("raw/pubmed.json", "")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if table.Rows[0]["id"].Str != "9.0" {
		t.Errorf("got %q", table.Rows[0]["id"].Str)
	}
}

func TestGraphRoundTrip(t *testing.T) {
	l, _ := testLake(t)
	g := graph.NewGraph()
	e := g.Ensure("R01AD")
	e.Pubmed = append(e.Pubmed, graph.Mention{
		ID:      "10.0",
		Title:   "Clinical implications",
		Date:    "2020-01-01",
		Journal: "The journal of maternal-fetal & neonatal medicine",
	})
	g.Ensure("V03AB")
	if err := l.WriteGraph("result/drug_graph.json", g, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := l.ReadGraph("result/drug_graph.json")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("got %d drugs, want 2", back.Len())
	}
	be, ok := back.Entry("R01AD")
	if !ok || len(be.Pubmed) != 1 || be.Pubmed[0].Journal != e.Pubmed[0].Journal {
		t.Errorf("graph entry lost in round trip: %+v", be)
	}
}

func TestFormatForKey(t *testing.T) {
	testCases := []struct {
		key    string
		format string
	}{
		{"a/b.csv", "csv"},
		{"a/b.csv.gz", "csv"},
		{"a/b.json", "json"},
		{"a/b.json.zst", "json"},
		{"a/b", "csv"},
	}
	for _, tc := range testCases {
		if got := FormatForKey(tc.key); got != tc.format {
			t.Errorf("%s: got %s, want %s", tc.key, got, tc.format)
		}
	}
}
