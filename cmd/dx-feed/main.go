// dx-feed lists and fetches the raw reference datasets (drug registry,
// publications, clinical trials) from an HTTP index page into the data
// lake's raw zone.
//
// $ dx-feed -u https://example.com/datasets/ -l
// drugs.csv
// pubmed.csv
// pubmed.json
// clinical_trials.csv
//
// $ dx-feed -u https://example.com/datasets/ -s drugs.csv
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref"
	"github.com/miku/drugxref/config"
	"github.com/miku/drugxref/feeds"
	"github.com/miku/drugxref/lake"
)

var (
	baseURL     = flag.String("u", "", "index page listing the raw dataset files")
	lakeDir     = flag.String("d", lake.DefaultDir, "data lake directory")
	listFiles   = flag.Bool("l", false, "list available dataset files")
	fetchFile   = flag.String("s", "", "name of a single file to fetch, all when empty")
	dateStr     = flag.String("t", time.Now().Format("2006-01-02"), "run day partition")
	overwrite   = flag.Bool("f", false, "overwrite existing raw files")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(drugxref.Version)
		os.Exit(0)
	}
	logger := logrus.StandardLogger()
	if *baseURL == "" {
		logger.Fatal("missing index url, use -u")
	}
	cfg := config.Default()
	cfg.LakeDir = *lakeDir
	runDate, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		logger.Fatalf("invalid date: %v", err)
	}
	cfg.RunDate = runDate

	fetcher, err := feeds.NewFetcher(*baseURL, logger)
	if err != nil {
		logger.Fatal(err)
	}
	files, err := fetcher.List()
	if err != nil {
		logger.Fatal(err)
	}
	if *listFiles {
		for _, f := range files {
			fmt.Println(f.Name)
		}
		return
	}
	l := lake.New(cfg.LakeDir, logger)
	for _, f := range files {
		if *fetchFile != "" && f.Name != *fetchFile {
			continue
		}
		key := cfg.RawKey(f.Name)
		if l.Exists(key) && !*overwrite {
			logger.WithField("key", key).Warn("raw file exists, skipping")
			continue
		}
		w, err := l.Create(key)
		if err != nil {
			logger.Fatal(err)
		}
		if err := fetcher.Fetch(f, w); err != nil {
			w.Close()
			logger.WithField("name", f.Name).WithError(err).Error("fetch failed")
			continue
		}
		if err := w.Close(); err != nil {
			logger.Fatal(err)
		}
	}
}
