// Package classify identifies license text by comparing it with a fixed
// corpus of canonical license bodies.
//
// Text is normalised (Unicode NFKC, case folding, copyright lines and URL
// schemes removed, punctuation dropped) and split into words. The score of a
// corpus entry is one minus the word-level Levenshtein distance divided by the
// longer length, so identical normalised text scores exactly 1.0. The best
// score wins; ties go to the lexicographically smallest identifier.
//
// A Corpus never changes after NewCorpus returns, and a Classifier may be
// shared by any number of goroutines.
package classify
