// Package drugxref links a drug registry to the publications and clinical
// trials that mention each drug by name. The heavy lifting happens in the
// cleaning and graph packages; the cmd tools wire the stages together.
package drugxref

const (
	AppName = "drugxref"
	Version = "0.1.0"
)

// UserAgent to use for fetching raw datasets.
var UserAgent = AppName + "/" + Version
