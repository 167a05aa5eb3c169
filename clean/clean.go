// Package clean orchestrates the per-table cleaning stage: text
// normalization, date normalization, mandatory field checks, identity
// assignment and column renames.
package clean

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref/dateutil"
	"github.com/miku/drugxref/identity"
	"github.com/miku/drugxref/normal"
	"github.com/miku/drugxref/tabular"
)

// Config describes the per-run cleaning rules for one table. These are
// data, supplied per invocation, not code.
type Config struct {
	TextColumns       []string          `json:"text_columns"`
	DateColumns       []string          `json:"date_columns"`
	ObligatoryColumns []string          `json:"obligatory_columns"`
	IdentityColumn    string            `json:"identity_column"`
	Rename            map[string]string `json:"rename"`
}

// MissingFieldError marks a row dropped because a mandatory column was
// empty.
type MissingFieldError struct {
	Column string
	Row    int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("row %d: mandatory column %s is empty", e.Row, e.Column)
}

// Cleaner applies a Config to tables. Row-level failures (unparseable
// date, empty mandatory field) exclude the row and are reported through
// the injected logger with source and row context; they never abort the
// stage.
type Cleaner struct {
	cfg    Config
	logger logrus.FieldLogger
}

// New creates a cleaner. A nil logger falls back to the standard one.
func New(cfg Config, logger logrus.FieldLogger) *Cleaner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if cfg.IdentityColumn == "" {
		cfg.IdentityColumn = identity.DefaultColumn
	}
	return &Cleaner{cfg: cfg, logger: logger}
}

// Clean produces a cleaned copy of the table. Step order: text columns,
// date columns, mandatory column check, identity assignment, renames. The
// source key only provides log context.
func (c *Cleaner) Clean(key string, t *tabular.Table) *tabular.Table {
	w := t.Clone()
	for _, col := range c.cfg.TextColumns {
		if !w.HasColumn(col) {
			continue
		}
		for _, row := range w.Rows {
			row[col] = tabular.String(normal.CleanText(row[col].Str))
		}
	}
	w = c.cleanDates(key, w)
	w = c.dropIncomplete(key, w)
	w = identity.New(c.cfg.IdentityColumn).Assign(w)
	if len(c.cfg.Rename) > 0 {
		w = w.RenameColumns(c.cfg.Rename)
	}
	return w
}

// cleanDates normalizes every configured date column; a row whose date
// cannot be parsed is excluded, not defaulted.
func (c *Cleaner) cleanDates(key string, t *tabular.Table) *tabular.Table {
	if len(c.cfg.DateColumns) == 0 {
		return t
	}
	w := tabular.New(t.Columns...)
	for i, row := range t.Rows {
		keep := true
		for _, col := range c.cfg.DateColumns {
			iso, err := dateutil.ToISO8601(row[col].Str)
			if err != nil {
				c.logger.WithFields(logrus.Fields{
					"source": key,
					"row":    i,
					"column": col,
				}).WithError(err).Error("dropping row: unparseable date")
				keep = false
				break
			}
			row[col] = tabular.String(iso)
		}
		if keep {
			w.Append(row)
		}
	}
	return w
}

// dropIncomplete excludes rows where any mandatory column is empty.
func (c *Cleaner) dropIncomplete(key string, t *tabular.Table) *tabular.Table {
	if len(c.cfg.ObligatoryColumns) == 0 {
		return t
	}
	w := tabular.New(t.Columns...)
	for i, row := range t.Rows {
		keep := true
		for _, col := range c.cfg.ObligatoryColumns {
			if row[col].Str == "" {
				c.logger.WithFields(logrus.Fields{
					"source": key,
					"row":    i,
				}).WithError(&MissingFieldError{Column: col, Row: i}).Warn("dropping row")
				keep = false
				break
			}
		}
		if keep {
			w.Append(row)
		}
	}
	return w
}
