// Package normal cleans free text fields coming from the raw drug,
// publication and trial datasets.
package normal

import (
	"regexp"
	"strings"
)

// escapeArtifact matches a backslash-escaped two-hex-digit byte sequence,
// optionally with a doubled backslash, optionally followed by a single
// space. These are single non-UTF-8 bytes left over from a prior
// mis-decoding; we delete them instead of guessing the source encoding.
var escapeArtifact = regexp.MustCompile(`(\\\\x|\\x)[0-9a-fA-F]{2} ?`)

type Pipeline struct {
	Normalizer []Normalizer
}

func (p *Pipeline) Normalize(s string) string {
	for _, n := range p.Normalizer {
		s = n.Normalize(s)
	}
	return s
}

type Normalizer interface {
	Normalize(string) string
}

// TrimNormalizer strips leading and trailing whitespace.
type TrimNormalizer struct{}

func (n *TrimNormalizer) Normalize(v string) string {
	return strings.TrimSpace(v)
}

// EscapeArtifactNormalizer deletes mis-encoded byte-escape artifacts.
type EscapeArtifactNormalizer struct{}

func (n *EscapeArtifactNormalizer) Normalize(v string) string {
	return escapeArtifact.ReplaceAllString(v, "")
}

// CleanEscapeArtifacts removes byte-escape artifacts only, no stripping.
func CleanEscapeArtifacts(s string) string {
	return escapeArtifact.ReplaceAllString(s, "")
}

var textPipeline = &Pipeline{Normalizer: []Normalizer{
	&TrimNormalizer{},
	&EscapeArtifactNormalizer{},
}}

// CleanText applies the default text column cleaning: strip surrounding
// whitespace, then drop byte-escape artifacts.
func CleanText(s string) string {
	return textPipeline.Normalize(s)
}
