// Package config carries the pipeline configuration: lake location, feed
// endpoint, run partitioning and the per-stage cleaning rules.
package config

import (
	"fmt"
	"time"

	"github.com/miku/drugxref/clean"
	"github.com/miku/drugxref/dateutil"
	"github.com/miku/drugxref/lake"
)

// Config for a pipeline run.
type Config struct {
	// LakeDir is the root directory of the local data lake.
	LakeDir string
	// FeedBaseURL is the HTTP index page listing the raw dataset files.
	FeedBaseURL string
	// RunDate selects the partition the run reads from and writes to.
	RunDate time.Time
	// Overwrite allows stages to replace existing artifacts.
	Overwrite  bool
	MaxRetries int
	Timeout    time.Duration
}

// Default returns a config for a run today.
func Default() Config {
	return Config{
		LakeDir:    lake.DefaultDir,
		RunDate:    time.Now(),
		MaxRetries: 3,
		Timeout:    60 * time.Second,
	}
}

// Day returns the run partition day in canonical form.
func (c Config) Day() string {
	return dateutil.RunDay(c.RunDate).Format(dateutil.ISO8601)
}

// RawKey returns the lake key of a raw source file for this run.
func (c Config) RawKey(name string) string {
	return fmt.Sprintf("raw/%s/%s", c.Day(), name)
}

// CleanKey returns the lake key of a cleaned artifact for this run.
func (c Config) CleanKey(name string) string {
	return fmt.Sprintf("clean/%s/%s", c.Day(), name)
}

// GraphKey returns the lake key of the final drug graph for this run.
func (c Config) GraphKey() string {
	return fmt.Sprintf("result/%s/drug_graph.json", c.Day())
}

// TrialsCleaning is the cleaning rule set for the clinical trials source:
// the scientific title is renamed to plain title so trials and
// publications share a schema downstream.
func TrialsCleaning() clean.Config {
	return clean.Config{
		TextColumns:       []string{"scientific_title", "journal"},
		DateColumns:       []string{"date"},
		ObligatoryColumns: []string{"scientific_title", "journal"},
		Rename:            map[string]string{"scientific_title": "title"},
	}
}

// PubmedCleaning is the cleaning rule set for the merged publications
// source.
func PubmedCleaning() clean.Config {
	return clean.Config{
		TextColumns:       []string{"title", "journal"},
		DateColumns:       []string{"date"},
		ObligatoryColumns: []string{"title", "journal"},
	}
}
