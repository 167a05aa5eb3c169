// dx-merge concatenates tables from multiple lake keys into one CSV
// artifact. Sources are given as key:format pairs and processed in
// argument order; a source that fails to load is skipped.
//
// $ dx-merge -o clean/2020-05-25/Merge_pubmed.csv \
//	raw/2020-05-25/pubmed.csv:csv raw/2020-05-25/pubmed.json:json
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref"
	"github.com/miku/drugxref/lake"
	"github.com/miku/drugxref/merge"
)

var (
	lakeDir     = flag.String("d", lake.DefaultDir, "data lake directory")
	destKey     = flag.String("o", "", "destination table key")
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
	if *destKey == "" {
		logger.Fatal("need a destination key (-o)")
	}
	if flag.NArg() == 0 {
		logger.Fatal("need at least one source as key:format")
	}
	var sources []merge.Source
	for _, arg := range flag.Args() {
		key, format := arg, ""
		if i := strings.LastIndex(arg, ":"); i != -1 {
			key, format = arg[:i], arg[i+1:]
		}
		if format == "" {
			format = lake.FormatForKey(key)
		}
		sources = append(sources, merge.Source{Key: key, Format: format})
	}
	l := lake.New(*lakeDir, logger)
	merged := merge.Merge(l, sources, logger)
	if err := l.WriteTable(*destKey, merged, *overwrite); err != nil {
		logger.Fatal(err)
	}
}
