// Package scan runs the article extraction pipeline over a corpus.
//
// A [Scanner] opens each document through a source.Source and analyzes its
// pages on a bounded worker pool. Pages share no mutable state, so they are
// analyzed independently; results are gathered back into document and page
// order before candidates are deduplicated.
//
// Failures stay local. A document that cannot be opened, or a page that
// fails to load or panics during analysis, is recorded as a [Failure] and
// logged, and the scan moves on:
//
//	s := scan.New(pdfsource.New(), "Jake Wray").WithLogger(log)
//	res, err := s.Scan(ctx, paths)
//	if err != nil {
//	    return err // canceled
//	}
//	for _, f := range res.Failures {
//	    fmt.Println("skipped:", f)
//	}
package scan
