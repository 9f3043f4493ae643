package article

// Deduplicate collapses candidates sharing an identical headline into one.
// For each headline the candidate produced last wins; the output keeps the
// order in which each headline was first seen.
//
// Two different articles that happen to share a headline collapse into one
// record. Use DeduplicateBy with a wider key to keep them apart.
func Deduplicate(candidates []Candidate) []Candidate {
	return DeduplicateBy(candidates, HeadlineKey)
}

// HeadlineKey keys a candidate by its headline text
func HeadlineKey(c Candidate) string {
	return c.Headline
}

// HeadlineDateKey keys a candidate by headline and issue date, so identical
// headlines from different issues are kept apart
func HeadlineDateKey(c Candidate) string {
	return c.Headline + "\x00" + c.Date
}

// DeduplicateBy collapses candidates that share key(c), last write wins,
// first-seen order.
func DeduplicateBy(candidates []Candidate, key func(Candidate) string) []Candidate {
	if len(candidates) == 0 {
		return nil
	}

	index := make(map[string]int, len(candidates))
	out := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		k := key(c)
		if i, ok := index[k]; ok {
			out[i] = c
			continue
		}
		index[k] = len(out)
		out = append(out, c)
	}

	return out
}
