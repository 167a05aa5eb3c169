// dx-graph builds the drug cross-reference graph from a cleaned drug
// registry, publication and clinical trial table and persists it as JSON.
//
// $ dx-graph -drugs raw/2020-05-25/drugs.csv \
//	-pubmed clean/2020-05-25/DP_pubmed.csv \
//	-trials clean/2020-05-25/DP_clinical_trials.csv \
//	-o result/2020-05-25/drug_graph.json
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
	drugsKey    = flag.String("drugs", "", "drug registry table key")
	pubmedKey   = flag.String("pubmed", "", "cleaned publications table key")
	trialsKey   = flag.String("trials", "", "cleaned clinical trials table key")
	destKey     = flag.String("o", "", "destination graph key")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(drugxref.Version)
		os.Exit(0)
	}
	logger := logrus.StandardLogger()
	if *drugsKey == "" || *pubmedKey == "" || *trialsKey == "" || *destKey == "" {
		logger.Fatal("need -drugs, -pubmed, -trials and -o keys")
	}
	l := lake.New(*lakeDir, logger)
	drugs, err := l.ReadTable(*drugsKey, "csv")
	if err != nil {
		logger.Fatal(err)
	}
	pubmed, err := l.ReadTable(*pubmedKey, "csv")
	if err != nil {
		logger.Fatal(err)
	}
	trials, err := l.ReadTable(*trialsKey, "csv")
	if err != nil {
		logger.Fatal(err)
	}
	g := graph.Build(drugs, pubmed, trials, logger)
	if err := l.WriteGraph(*destKey, g, true); err != nil {
		logger.Fatal(err)
	}
}
