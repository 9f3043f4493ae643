// Package article turns byline anchors into article candidates.
//
// The [Gate] is a sequential rejection funnel. Each anchor found on a page is
// either discarded with a [Rejection] naming the rule that failed, or
// assembled into a [Candidate] carrying the headline, body, image count,
// issue date and slug:
//
//	gate := article.NewGate()
//	for _, anchor := range anchors {
//	    c, rej, ok := gate.Evaluate(article.Input{Page: page, Words: words, Anchor: anchor, Filename: name})
//	    if !ok {
//	        log.Printf("rejected: %s", rej.Reason)
//	        continue
//	    }
//	    candidates = append(candidates, c)
//	}
//
// After a scan, [Deduplicate] collapses candidates that share a headline.
package article
