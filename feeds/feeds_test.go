package feeds

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
)

const mockHTML = `<!DOCTYPE HTML>
<html>
 <head><title>Index of /datasets</title></head>
 <body>
 <h1>Index of /datasets</h1>
 <pre><a href="/">Parent Directory</a>
 <a href="README.txt">README.txt</a>
 <a href="drugs.csv">drugs.csv</a>
 <a href="pubmed.csv">pubmed.csv</a>
 <a href="pubmed.json">pubmed.json</a>
 <a href="clinical_trials.csv.gz">clinical_trials.csv.gz</a>
 </pre>
 </body>
</html>
`

func setupTestServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/datasets/", "/datasets":
			w.Header().Set("Content-Type", "text/html")
			io.WriteString(w, mockHTML)
		case "/datasets/drugs.csv":
			io.WriteString(w, "atccode,drug\nA04AD,DIPHENHYDRAMINE\n")
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestFetcher(t *testing.T, baseURL string) *Fetcher {
	t.Helper()
	logger, _ := logtest.NewNullLogger()
	f, err := NewFetcher(baseURL, logger)
	if err != nil {
		t.Fatalf("failed to create fetcher: %v", err)
	}
	// Per-test cache dir, no TTL interference between runs.
	f.CacheDir = t.TempDir()
	f.CacheTTL = time.Minute
	return f
}

func TestList(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	f := newTestFetcher(t, server.URL+"/datasets/")
	files, err := f.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"drugs.csv", "pubmed.csv", "pubmed.json", "clinical_trials.csv.gz"}
	if len(files) != len(want) {
		t.Fatalf("got %d files, want %d: %+v", len(files), len(want), files)
	}
	for i, name := range want {
		if files[i].Name != name {
			t.Errorf("file %d: got %s, want %s", i, files[i].Name, name)
		}
	}
	if files[0].URL != server.URL+"/datasets/drugs.csv" {
		t.Errorf("got url %s", files[0].URL)
	}
}

func TestListUsesCache(t *testing.T) {
	server := setupTestServer()
	f := newTestFetcher(t, server.URL+"/datasets/")
	if _, err := f.List(); err != nil {
		t.Fatalf("first list: %v", err)
	}
	server.Close()
	// Second listing succeeds from the on-disk cache.
	files, err := f.List()
	if err != nil {
		t.Fatalf("cached list: %v", err)
	}
	if len(files) != 4 {
		t.Errorf("got %d files, want 4", len(files))
	}
}

func TestFetch(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	f := newTestFetcher(t, server.URL+"/datasets/")
	var buf bytes.Buffer
	err := f.Fetch(DatasetFile{Name: "drugs.csv", URL: server.URL + "/datasets/drugs.csv"}, &buf)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := buf.String(); got != "atccode,drug\nA04AD,DIPHENHYDRAMINE\n" {
		t.Errorf("got %q", got)
	}
}

func TestFetchNotFound(t *testing.T) {
	server := setupTestServer()
	defer server.Close()

	f := newTestFetcher(t, server.URL+"/datasets/")
	var buf bytes.Buffer
	err := f.Fetch(DatasetFile{Name: "nope.csv", URL: server.URL + "/datasets/nope.csv"}, &buf)
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}
