// Package identity assigns stable identifiers to records that arrive
// without one. The identifier is derived from the record content, so
// re-processing the same source yields the same ids.
package identity

import (
	"crypto/md5"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/miku/drugxref/tabular"
)

// DefaultColumn is the identity column used by the pipeline sources.
const DefaultColumn = "id"

// Fingerprint returns the hex-encoded md5 of the comma-joined values.
func Fingerprint(values []string) string {
	h := md5.Sum([]byte(strings.Join(values, ",")))
	return fmt.Sprintf("%x", h)
}

// FromContent derives a v5 UUID from record content: md5 the comma-joined
// values, then uuid5 over the hex digest with the DNS namespace. Two
// records with identical content collide; that is a documented limitation.
func FromContent(values []string) string {
	return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(Fingerprint(values))).String()
}

// Assigner fills the identity column of a table.
type Assigner struct {
	Column string
}

// New creates an assigner for the given identity column; an empty name
// falls back to DefaultColumn.
func New(column string) *Assigner {
	if column == "" {
		column = DefaultColumn
	}
	return &Assigner{Column: column}
}

// Assign returns a copy of the table where every record missing an
// identity carries one derived from its other column values, taken in
// table column order. Records that already have an identity are untouched.
func (a *Assigner) Assign(t *tabular.Table) *tabular.Table {
	c := t.Clone()
	c.EnsureColumn(a.Column)
	for _, row := range c.Rows {
		if v := row[a.Column]; v.Valid && v.Str != "" {
			continue
		}
		var values []string
		for _, col := range c.Columns {
			if col == a.Column {
				continue
			}
			values = append(values, row[col].Str)
		}
		row[a.Column] = tabular.String(FromContent(values))
	}
	return c
}
