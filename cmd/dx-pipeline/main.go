// dx-pipeline runs the full cross-reference pipeline for one day
// partition: clean the clinical trials, merge and clean the publications,
// build and persist the drug graph. Individual stages can be re-run with
// the dedicated tools (dx-clean, dx-merge, dx-graph).
//
// $ dx-pipeline -t 2020-05-25 -f
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref"
	"github.com/miku/drugxref/config"
	"github.com/miku/drugxref/lake"
	"github.com/miku/drugxref/pipeline"
)

var (
	lakeDir     = flag.String("d", lake.DefaultDir, "data lake directory")
	dateStr     = flag.String("t", time.Now().Format("2006-01-02"), "run day partition")
	overwrite   = flag.Bool("f", false, "overwrite existing stage artifacts")
	verbose     = flag.Bool("v", false, "debug logging")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(drugxref.Version)
		os.Exit(0)
	}
	logger := logrus.StandardLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	cfg := config.Default()
	cfg.LakeDir = *lakeDir
	cfg.Overwrite = *overwrite
	runDate, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		logger.Fatalf("invalid date: %v", err)
	}
	cfg.RunDate = runDate

	l := lake.New(cfg.LakeDir, logger)
	p := pipeline.New(cfg, l, logger)
	if err := p.Run(); err != nil {
		logger.Fatal(err)
	}
}
