// Package merge concatenates tables of compatible shape from multiple
// named sources into one.
package merge

import (
	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref/tabular"
)

// Source names one input of a merge: a storage key plus its format.
type Source struct {
	Key    string
	Format string
}

// Loader resolves a source key and format into a table; the data lake
// implements this.
type Loader interface {
	ReadTable(key, format string) (*tabular.Table, error)
}

// Merge loads each source in order and concatenates the rows. A source
// that fails to load is logged and skipped, partial success is fine. Row
// order is preserved within a source; the merged column set is the union
// in first-seen order, cells missing from a source stay null.
func Merge(loader Loader, sources []Source, logger logrus.FieldLogger) *tabular.Table {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	merged := tabular.New()
	for _, src := range sources {
		t, err := loader.ReadTable(src.Key, src.Format)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"source": src.Key,
				"format": src.Format,
			}).WithError(err).Error("skipping source")
			continue
		}
		for _, col := range t.Columns {
			merged.EnsureColumn(col)
		}
		for _, row := range t.Rows {
			merged.Append(row.Clone())
		}
	}
	return merged
}
