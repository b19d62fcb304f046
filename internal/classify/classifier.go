package classify

import (
	"crypto/sha256"
	"sort"

	"github.com/agext/levenshtein"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
)

// Classifier scores texts against a Corpus.
type Classifier struct {
	corpus *Corpus
	memo   *lru.Cache[[sha256.Size]byte, domain.Classification]
}

type Option func(*Classifier) error

// WithCacheSize memoises the last n results keyed by the SHA-256 of the
// input text. Zero or a negative n disables the cache.
func WithCacheSize(n int) Option {
	return func(c *Classifier) error {
		if n <= 0 {
			c.memo = nil
			return nil
		}
		memo, err := lru.New[[sha256.Size]byte, domain.Classification](n)
		if err != nil {
			return err
		}
		c.memo = memo
		return nil
	}
}

// New returns a classifier over corpus.
func New(corpus *Corpus, opts ...Option) (*Classifier, error) {
	if corpus == nil || corpus.Len() == 0 {
		return nil, ErrCorpusUnavailable
	}
	c := &Classifier{corpus: corpus}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Classifier) Corpus() *Corpus { return c.corpus }

type candidate struct {
	e     *entry
	bound float64
}

// Analyze returns the best matching license and its score in [0, 1].
func (c *Classifier) Analyze(text string) domain.Classification {
	var key [sha256.Size]byte
	if c.memo != nil {
		key = sha256.Sum256([]byte(text))
		if res, ok := c.memo.Get(key); ok {
			return res
		}
	}

	res := c.analyze(text)
	if c.memo != nil {
		c.memo.Add(key, res)
	}
	return res
}

func (c *Classifier) analyze(text string) domain.Classification {
	codes := c.corpus.encode(Tokenize(text))
	words := encodeWords(codes)
	bag := bagOf(codes)

	// The shared word count over the longer length bounds the score from
	// above: every word missing from one side costs at least one edit.
	cands := make([]candidate, len(c.corpus.entries))
	for i := range c.corpus.entries {
		e := &c.corpus.entries[i]
		longest := max(len(codes), e.n)
		bound := 1.0
		if longest > 0 {
			bound = float64(common(bag, e.bag)) / float64(longest)
		}
		cands[i] = candidate{e: e, bound: bound}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].bound != cands[j].bound {
			return cands[i].bound > cands[j].bound
		}
		return cands[i].e.id < cands[j].e.id
	})

	best := domain.Classification{Score: -1}
	for _, cand := range cands {
		if cand.bound < best.Score {
			break
		}
		if cand.bound == best.Score && cand.e.id > best.License {
			continue
		}
		score := similarity(words, len(codes), cand.e)
		if score > best.Score || (score == best.Score && cand.e.id < best.License) {
			best = domain.Classification{License: cand.e.id, Score: score}
		}
	}
	return best
}

func similarity(words string, n int, e *entry) float64 {
	longest := max(n, e.n)
	if longest == 0 {
		return 1
	}
	d := levenshtein.Distance(words, e.words, nil)
	return float64(longest-d) / float64(longest)
}
