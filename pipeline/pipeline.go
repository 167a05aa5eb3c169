// Package pipeline sequences the cross-reference run: clean the clinical
// trials, merge and clean the publications, then build and persist the
// drug graph. Each stage hands its artifact to the next through the data
// lake, so a failed run can be retried per stage by the scheduler.
package pipeline

import (
	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref/clean"
	"github.com/miku/drugxref/config"
	"github.com/miku/drugxref/graph"
	"github.com/miku/drugxref/lake"
	"github.com/miku/drugxref/merge"
)

// Source and artifact names within a run partition.
const (
	RawDrugs      = "drugs.csv"
	RawPubmedCSV  = "pubmed.csv"
	RawPubmedJSON = "pubmed.json"
	RawTrials     = "clinical_trials.csv"
	CleanTrials   = "DP_clinical_trials.csv"
	MergedPubmed  = "Merge_pubmed.csv"
	CleanPubmed   = "DP_pubmed.csv"
)

// Pipeline runs the cleaning and graph stages over a data lake.
type Pipeline struct {
	cfg    config.Config
	lake   *lake.Lake
	logger logrus.FieldLogger
}

// New creates a pipeline over a lake.
func New(cfg config.Config, l *lake.Lake, logger logrus.FieldLogger) *Pipeline {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Pipeline{cfg: cfg, lake: l, logger: logger}
}

// CleanTrials cleans the raw clinical trials table.
func (p *Pipeline) CleanTrials() error {
	t, err := p.lake.ReadTable(p.cfg.RawKey(RawTrials), "csv")
	if err != nil {
		return err
	}
	cleaner := clean.New(config.TrialsCleaning(), p.logger)
	cleaned := cleaner.Clean(RawTrials, t)
	return p.lake.WriteTable(p.cfg.CleanKey(CleanTrials), cleaned, p.cfg.Overwrite)
}

// MergePubmed concatenates the csv and json publication sources into one
// intermediate artifact. A source that fails to load is skipped, the
// merge itself does not fail.
func (p *Pipeline) MergePubmed() error {
	merged := merge.Merge(p.lake, []merge.Source{
		{Key: p.cfg.RawKey(RawPubmedCSV), Format: "csv"},
		{Key: p.cfg.RawKey(RawPubmedJSON), Format: "json"},
	}, p.logger)
	return p.lake.WriteTable(p.cfg.CleanKey(MergedPubmed), merged, p.cfg.Overwrite)
}

// CleanPubmed cleans the merged publications table.
func (p *Pipeline) CleanPubmed() error {
	t, err := p.lake.ReadTable(p.cfg.CleanKey(MergedPubmed), "csv")
	if err != nil {
		return err
	}
	cleaner := clean.New(config.PubmedCleaning(), p.logger)
	cleaned := cleaner.Clean(MergedPubmed, t)
	return p.lake.WriteTable(p.cfg.CleanKey(CleanPubmed), cleaned, p.cfg.Overwrite)
}

// BuildGraph assembles the drug graph from the registry and the cleaned
// tables and persists it as the terminal artifact. The graph is always
// written, replacing a previous result for the same run.
func (p *Pipeline) BuildGraph() (*graph.Graph, error) {
	drugs, err := p.lake.ReadTable(p.cfg.RawKey(RawDrugs), "csv")
	if err != nil {
		return nil, err
	}
	pubmed, err := p.lake.ReadTable(p.cfg.CleanKey(CleanPubmed), "csv")
	if err != nil {
		return nil, err
	}
	trials, err := p.lake.ReadTable(p.cfg.CleanKey(CleanTrials), "csv")
	if err != nil {
		return nil, err
	}
	g := graph.Build(drugs, pubmed, trials, p.logger)
	if err := p.lake.WriteGraph(p.cfg.GraphKey(), g, true); err != nil {
		return nil, err
	}
	return g, nil
}

// Run executes all stages in order; the first failing stage stops the
// run.
func (p *Pipeline) Run() error {
	p.logger.WithField("day", p.cfg.Day()).Info("starting run")
	if err := p.CleanTrials(); err != nil {
		return err
	}
	if err := p.MergePubmed(); err != nil {
		return err
	}
	if err := p.CleanPubmed(); err != nil {
		return err
	}
	if _, err := p.BuildGraph(); err != nil {
		return err
	}
	p.logger.WithField("day", p.cfg.Day()).Info("run complete")
	return nil
}
