// Package lake is the storage boundary of the pipeline: a local directory
// acting as an object store for raw files, cleaned tables and the final
// drug graph. Keys are relative paths; keys ending in .gz or .zst are
// transparently (de)compressed.
package lake

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/klauspost/compress/zstd"
	gzip "github.com/klauspost/pgzip"
	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref"
	"github.com/miku/drugxref/graph"
	"github.com/miku/drugxref/tabular"
)

// LoadError wraps a failure to read or parse a source object.
type LoadError struct {
	Key string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Key, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// WriteConflictError signals that a destination key already exists and
// overwrite was not requested.
type WriteConflictError struct {
	Key string
}

func (e *WriteConflictError) Error() string {
	return fmt.Sprintf("write conflict: %s already exists", e.Key)
}

// DefaultDir is the fallback lake location.
var DefaultDir = filepath.Join(xdg.DataHome, drugxref.AppName, "lake")

// Lake stores pipeline artifacts under a root directory.
type Lake struct {
	Dir    string
	logger logrus.FieldLogger
}

// New creates a lake rooted at dir; empty dir falls back to DefaultDir,
// nil logger to the standard one.
func New(dir string, logger logrus.FieldLogger) *Lake {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Lake{Dir: dir, logger: logger}
}

// Path returns the filesystem path for a key.
func (l *Lake) Path(key string) string {
	return filepath.Join(l.Dir, filepath.FromSlash(key))
}

// Exists reports whether a key is present.
func (l *Lake) Exists(key string) bool {
	_, err := os.Stat(l.Path(key))
	return err == nil
}

// Open returns a reader for a key, decompressing .gz and .zst.
func (l *Lake) Open(key string) (io.ReadCloser, error) {
	f, err := os.Open(l.Path(key))
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(key, ".gz"):
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedReadCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case strings.HasSuffix(key, ".zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		rc := zr.IOReadCloser()
		return &wrappedReadCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

// Create returns a writer for a key, compressing .gz and .zst, creating
// parent directories as needed. The caller owns Close.
func (l *Lake) Create(key string) (io.WriteCloser, error) {
	p := l.Path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(p)
	if err != nil {
		return nil, err
	}
	switch {
	case strings.HasSuffix(key, ".gz"):
		zw := gzip.NewWriter(f)
		return &wrappedWriteCloser{Writer: zw, closers: []io.Closer{zw, f}}, nil
	case strings.HasSuffix(key, ".zst"):
		zw, err := zstd.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return &wrappedWriteCloser{Writer: zw, closers: []io.Closer{zw, f}}, nil
	default:
		return f, nil
	}
}

// guard implements the overwrite protection shared by all writers: an
// existing key without overwrite makes the write a logged no-op.
func (l *Lake) guard(key string, overwrite bool) bool {
	if overwrite || !l.Exists(key) {
		return true
	}
	l.logger.WithField("key", key).WithError(&WriteConflictError{Key: key}).
		Warn("destination exists, skipping write")
	return false
}

// ReadTable loads a table from a key. Format is "csv" or "json"; empty
// format is derived from the key suffix, compression suffixes ignored.
func (l *Lake) ReadTable(key, format string) (*tabular.Table, error) {
	if format == "" {
		format = FormatForKey(key)
	}
	r, err := l.Open(key)
	if err != nil {
		return nil, &LoadError{Key: key, Err: err}
	}
	defer r.Close()
	var t *tabular.Table
	switch strings.ToLower(format) {
	case "json":
		t, err = tabular.FromJSON(r)
	case "csv":
		t, err = tabular.FromCSV(r)
	default:
		return nil, &LoadError{Key: key, Err: fmt.Errorf("unsupported format: %s", format)}
	}
	if err != nil {
		return nil, &LoadError{Key: key, Err: err}
	}
	l.logger.WithFields(logrus.Fields{"key": key, "rows": t.Len()}).Info("table loaded")
	return t, nil
}

// WriteTable persists a table as CSV under a key, honoring the overwrite
// guard.
func (l *Lake) WriteTable(key string, t *tabular.Table, overwrite bool) error {
	if !l.guard(key, overwrite) {
		return nil
	}
	w, err := l.Create(key)
	if err != nil {
		return err
	}
	if err := t.WriteCSV(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	l.logger.WithFields(logrus.Fields{"key": key, "rows": t.Len()}).Info("table written")
	return nil
}

// WriteGraph persists a drug graph as JSON under a key, honoring the
// overwrite guard.
func (l *Lake) WriteGraph(key string, g *graph.Graph, overwrite bool) error {
	if !l.guard(key, overwrite) {
		return nil
	}
	w, err := l.Create(key)
	if err != nil {
		return err
	}
	if err := g.WriteJSON(w); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	l.logger.WithFields(logrus.Fields{"key": key, "drugs": g.Len()}).Info("graph written")
	return nil
}

// ReadGraph loads a drug graph from a key.
func (l *Lake) ReadGraph(key string) (*graph.Graph, error) {
	r, err := l.Open(key)
	if err != nil {
		return nil, &LoadError{Key: key, Err: err}
	}
	defer r.Close()
	g, err := graph.ReadJSON(r)
	if err != nil {
		return nil, &LoadError{Key: key, Err: err}
	}
	return g, nil
}

// FormatForKey derives the table format from a key suffix, skipping
// compression suffixes.
func FormatForKey(key string) string {
	for _, suffix := range []string{".gz", ".zst"} {
		key = strings.TrimSuffix(key, suffix)
	}
	switch strings.ToLower(filepath.Ext(key)) {
	case ".json":
		return "json"
	default:
		return "csv"
	}
}

type wrappedReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (w *wrappedReadCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type wrappedWriteCloser struct {
	io.Writer
	closers []io.Closer
}

func (w *wrappedWriteCloser) Close() error {
	var err error
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
