// dx-clean runs the cleaning stage over one table in the data lake: text
// normalization, date normalization, mandatory column checks, identity
// assignment and column renames.
//
// $ dx-clean -s raw/2020-05-25/clinical_trials.csv \
//	-o clean/2020-05-25/DP_clinical_trials.csv -p trials
//
// A custom rule set can be passed as a JSON file with -c:
//
//	{
//	  "text_columns": ["title", "journal"],
//	  "date_columns": ["date"],
//	  "obligatory_columns": ["title", "journal"],
//	  "rename": {"scientific_title": "title"}
//	}
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref"
	"github.com/miku/drugxref/clean"
	"github.com/miku/drugxref/config"
	"github.com/miku/drugxref/lake"
)

var (
	lakeDir     = flag.String("d", lake.DefaultDir, "data lake directory")
	sourceKey   = flag.String("s", "", "source table key")
	destKey     = flag.String("o", "", "destination table key")
	format      = flag.String("F", "", "source format (csv, json), derived from the key when empty")
	preset      = flag.String("p", "", "cleaning preset: trials, pubmed")
	configFile  = flag.String("c", "", "cleaning rules as a JSON file, overrides -p")
	overwrite   = flag.Bool("f", false, "overwrite an existing destination")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(drugxref.Version)
		os.Exit(0)
	}
	logger := logrus.StandardLogger()
	if *sourceKey == "" || *destKey == "" {
		logger.Fatal("need a source (-s) and a destination (-o) key")
	}
	var cfg clean.Config
	switch {
	case *configFile != "":
		b, err := os.ReadFile(*configFile)
		if err != nil {
			logger.Fatal(err)
		}
		if err := json.Unmarshal(b, &cfg); err != nil {
			logger.Fatalf("invalid cleaning rules: %v", err)
		}
	case *preset == "trials":
		cfg = config.TrialsCleaning()
	case *preset == "pubmed":
		cfg = config.PubmedCleaning()
	default:
		logger.Fatalf("need a preset (-p trials|pubmed) or a config file (-c)")
	}
	l := lake.New(*lakeDir, logger)
	t, err := l.ReadTable(*sourceKey, *format)
	if err != nil {
		logger.Fatal(err)
	}
	cleaned := clean.New(cfg, logger).Clean(*sourceKey, t)
	if err := l.WriteTable(*destKey, cleaned, *overwrite); err != nil {
		logger.Fatal(err)
	}
}
