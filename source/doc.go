// Package source defines where page geometry comes from.
//
// The extraction pipeline consumes pages of positioned words and placed
// images. A [Source] opens a document by path; a [Document] hands out its
// pages one at a time and may be read from several goroutines.
//
// Two sources live here: [DumpSource] reads JSON page-geometry dumps, and
// [Memory] serves pages built in code. The pdfsource package reads PDFs.
package source
