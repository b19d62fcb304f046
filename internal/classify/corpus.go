package classify

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrCorpusUnavailable means no usable reference corpus could be loaded.
var ErrCorpusUnavailable = errors.New("license corpus unavailable")

type entry struct {
	id    string
	text  string
	words string // one rune per word, see wordRune
	n     int
	bag   map[int32]int
}

// Corpus is an immutable set of canonical license texts.
type Corpus struct {
	version string
	entries []entry
	vocab   map[string]int32
}

// NewCorpus tokenises every text once. Identifiers must be non-empty and
// contain no whitespace.
func NewCorpus(version string, texts map[string]string) (*Corpus, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no licenses", ErrCorpusUnavailable)
	}

	ids := make([]string, 0, len(texts))
	for id := range texts {
		if id == "" || strings.ContainsAny(id, " \t\r\n") {
			return nil, fmt.Errorf("%w: invalid license id %q", ErrCorpusUnavailable, id)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	c := &Corpus{
		version: version,
		entries: make([]entry, 0, len(ids)),
		vocab:   map[string]int32{},
	}
	for _, id := range ids {
		words := Tokenize(texts[id])
		codes := make([]int32, len(words))
		for i, w := range words {
			code, ok := c.vocab[w]
			if !ok {
				code = int32(len(c.vocab))
				c.vocab[w] = code
			}
			codes[i] = code
		}
		c.entries = append(c.entries, entry{
			id:    id,
			text:  texts[id],
			words: encodeWords(codes),
			n:     len(codes),
			bag:   bagOf(codes),
		})
	}
	return c, nil
}

func (c *Corpus) Version() string { return c.version }

func (c *Corpus) Len() int { return len(c.entries) }

// IDs returns the license identifiers in sorted order.
func (c *Corpus) IDs() []string {
	out := make([]string, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.id
	}
	return out
}

// Text returns the canonical text of a license.
func (c *Corpus) Text(id string) (string, bool) {
	i := sort.Search(len(c.entries), func(i int) bool { return c.entries[i].id >= id })
	if i < len(c.entries) && c.entries[i].id == id {
		return c.entries[i].text, true
	}
	return "", false
}

// encode maps words to codes. Words outside the corpus vocabulary get fresh
// codes local to this call, so the shared vocabulary is never written.
func (c *Corpus) encode(words []string) []int32 {
	codes := make([]int32, len(words))
	var local map[string]int32
	for i, w := range words {
		if code, ok := c.vocab[w]; ok {
			codes[i] = code
			continue
		}
		if local == nil {
			local = map[string]int32{}
		}
		code, ok := local[w]
		if !ok {
			code = int32(len(c.vocab) + len(local))
			local[w] = code
		}
		codes[i] = code
	}
	return codes
}

func bagOf(codes []int32) map[int32]int {
	bag := make(map[int32]int, len(codes))
	for _, c := range codes {
		bag[c]++
	}
	return bag
}

// common counts the multiset intersection of two bags.
func common(a, b map[int32]int) int {
	if len(a) > len(b) {
		a, b = b, a
	}
	n := 0
	for code, ca := range a {
		n += min(ca, b[code])
	}
	return n
}

// wordRune maps a word code to a rune, skipping the surrogate range so every
// code survives a string round trip.
func wordRune(code int32) rune {
	r := rune(0x100 + code)
	if r >= 0xD800 {
		r += 0x800
	}
	return r
}

func encodeWords(codes []int32) string {
	rs := make([]rune, len(codes))
	for i, c := range codes {
		rs[i] = wordRune(c)
	}
	return string(rs)
}
