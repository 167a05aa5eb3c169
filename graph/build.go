package graph

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref/tabular"
)

// toMention projects a publication or trial row onto a Mention. All
// values are already strings in the table model; the id keeps whatever
// literal the source carried (e.g. "9.0").
func toMention(row tabular.Record) Mention {
	return Mention{
		ID:      row["id"].Str,
		Title:   row["title"].Str,
		Date:    row["date"].Str,
		Journal: row["journal"].Str,
	}
}

// matchMentions returns a mention for every row whose non-null title
// contains the drug name, case-insensitive, in source row order. A drug
// name that is a substring of a longer title matches that title too; such
// shared mentions are not deduplicated across drugs.
func matchMentions(t *tabular.Table, drugName string) []Mention {
	var (
		needle   = strings.ToLower(drugName)
		mentions = []Mention{}
	)
	for _, row := range t.Rows {
		title := row["title"]
		if !title.Valid {
			continue
		}
		if strings.Contains(strings.ToLower(title.Str), needle) {
			mentions = append(mentions, toMention(row))
		}
	}
	return mentions
}

// Build scans the publication and trial tables for title mentions of
// every drug in the registry and assembles the cross-reference graph.
// Every drug code ends up in the graph, mention lists may be empty. The
// scan is a plain substring search over each drug/title pair; the source
// tables are small reference sets, no index needed.
func Build(drugs, pubmed, trials *tabular.Table, logger logrus.FieldLogger) *Graph {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := NewGraph()
	for i, row := range drugs.Rows {
		code, name := row["atccode"], row["drug"]
		if !code.Valid || code.Str == "" {
			logger.WithField("row", i).Warn("skipping drug row without atccode")
			continue
		}
		entry := g.Ensure(code.Str)
		if !name.Valid || name.Str == "" {
			logger.WithFields(logrus.Fields{
				"row":     i,
				"atccode": code.Str,
			}).Warn("drug row without a name, keeping empty entry")
			continue
		}
		entry.Pubmed = matchMentions(pubmed, name.Str)
		entry.ClinicalTrials = matchMentions(trials, name.Str)
	}
	logger.WithFields(logrus.Fields{
		"drugs":  g.Len(),
		"pubmed": pubmed.Len(),
		"trials": trials.Len(),
	}).Info("drug graph built")
	return g
}
