// dx-query answers the two analytical queries over a persisted drug
// graph.
//
// $ dx-query -g result/2020-05-25/drug_graph.json -top-journal
// The journal of maternal-fetal & neonatal medicine
//
// $ dx-query -g result/2020-05-25/drug_graph.json -related A03BA
// R01AD
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/miku/drugxref"
	"github.com/miku/drugxref/graph"
	"github.com/miku/drugxref/lake"
)

var (
	lakeDir     = flag.String("d", lake.DefaultDir, "data lake directory")
	graphKey    = flag.String("g", "", "drug graph key")
	topJournal  = flag.Bool("top-journal", false, "journal mentioned by the drug with the most journal diversity")
	relatedTo   = flag.String("related", "", "drugs sharing a pubmed journal with this drug code")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(drugxref.Version)
		os.Exit(0)
	}
	logger := logrus.StandardLogger()
	if *graphKey == "" {
		logger.Fatal("need a graph key (-g)")
	}
	l := lake.New(*lakeDir, logger)
	g, err := l.ReadGraph(*graphKey)
	if err != nil {
		logger.Fatal(err)
	}
	switch {
	case *topJournal:
		fmt.Println(graph.MostMentioningJournal(g))
	case *relatedTo != "":
		for _, code := range graph.RelatedDrugsViaJournals(g, *relatedTo) {
			fmt.Println(code)
		}
	default:
		logger.Fatal("need a query: -top-journal or -related CODE")
	}
}
