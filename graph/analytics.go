package graph

import "sort"

// combinedMentions returns pubmed then trial mentions of an entry, in
// list order.
func combinedMentions(e *Entry) []Mention {
	all := make([]Mention, 0, len(e.Pubmed)+len(e.ClinicalTrials))
	all = append(all, e.Pubmed...)
	all = append(all, e.ClinicalTrials...)
	return all
}

// distinctJournals collects the set of journals over a mention list.
func distinctJournals(mentions []Mention) map[string]bool {
	set := make(map[string]bool)
	for _, m := range mentions {
		set[m.Journal] = true
	}
	return set
}

// mostFrequentMention returns the mention that repeats most often in the
// list, full-record equality; ties go to the first mention reaching the
// maximum count, in list order.
func mostFrequentMention(mentions []Mention) (Mention, bool) {
	if len(mentions) == 0 {
		return Mention{}, false
	}
	counts := make(map[Mention]int, len(mentions))
	for _, m := range mentions {
		counts[m]++
	}
	var (
		best    Mention
		bestCnt int
	)
	for _, m := range mentions {
		if counts[m] > bestCnt {
			best, bestCnt = m, counts[m]
		}
	}
	return best, true
}

// MostMentioningJournal finds the drug with the greatest diversity of
// journals across its combined pubmed and trial mentions (first seen wins
// ties, in graph order) and returns the journal of the most frequent
// mention within that drug's own combined list. Note the asymmetry: the
// winning drug is the one with the most journals, not the journal with
// the most drugs; downstream reporting depends on this exact behavior.
func MostMentioningJournal(g *Graph) string {
	var (
		maxJournals int
		result      string
	)
	for _, code := range g.codes {
		all := combinedMentions(g.entries[code])
		n := len(distinctJournals(all))
		if n > maxJournals {
			maxJournals = n
			if m, ok := mostFrequentMention(all); ok {
				result = m.Journal
			}
		}
	}
	return result
}

// RelatedDrugsViaJournals returns the codes of all drugs, other than the
// target, whose pubmed mention journals intersect the target's pubmed
// mention journals. Clinical-trial journals do not count. The result is
// sorted; it is empty when the target is unknown or shares no journal.
func RelatedDrugsViaJournals(g *Graph, targetDrug string) []string {
	related := []string{}
	target, ok := g.entries[targetDrug]
	if !ok {
		return related
	}
	targetJournals := distinctJournals(target.Pubmed)
	for _, code := range g.codes {
		if code == targetDrug {
			continue
		}
		for _, m := range g.entries[code].Pubmed {
			if targetJournals[m.Journal] {
				related = append(related, code)
				break
			}
		}
	}
	sort.Strings(related)
	return related
}
