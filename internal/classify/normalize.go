package classify

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type rewrite struct {
	regex       *regexp.Regexp
	replacement string
}

// rewrites run in order on NFKC-normalised, case-folded text.
var rewrites = []rewrite{
	// Copyright notices differ per project: "Copyright (c) 2021 Jane Doe".
	{regexp.MustCompile(`(?m)^[ \t*#/>-]*(copyright|\(c\)|©).*$`), ""},
	{regexp.MustCompile(`(?m)^[ \t*#/>-]*all rights reserved\.?[ \t]*$`), ""},
	{regexp.MustCompile(`https?://`), ""},
	{regexp.MustCompile(`\blicenc`), "licens"},
	{regexp.MustCompile(`[^\p{L}\p{N}]+`), " "},
}

// Normalize returns the comparable form of a license text.
func Normalize(text string) string {
	s := norm.NFKC.String(text)
	// A Caser keeps state, so each call gets its own.
	s = cases.Fold().String(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")
	for _, rw := range rewrites {
		s = rw.regex.ReplaceAllString(s, rw.replacement)
	}
	return strings.TrimSpace(s)
}

// Tokenize splits the normalised text into words.
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}
