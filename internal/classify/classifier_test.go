package classify

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alphaText = "Permission is granted to use copy modify and distribute this software for any purpose"
	betaText  = "Redistribution and use in source and binary forms with or without modification are permitted"
	gammaText = "This software is provided as is without warranty of any kind express or implied"
)

func testCorpus(t *testing.T) *Corpus {
	t.Helper()
	c, err := NewCorpus("test-1", map[string]string{
		"Alpha": alphaText,
		"Beta":  betaText,
		"Gamma": gammaText,
	})
	require.NoError(t, err)
	return c
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"case and punctuation", "Hello, WORLD!", "hello world"},
		{"copyright line", "Copyright (c) 2020 Jane Doe\nMIT License", "mit license"},
		{"symbol copyright", "  © 1999 Someone\r\nText", "text"},
		{"rights reserved", "Foo\nAll rights reserved.\nBar", "foo bar"},
		{"url scheme", "see https://example.org/x", "see example org x"},
		{"british spelling", "This Licence applies", "this license applies"},
		{"fullwidth", "ＭＩＴ", "mit"},
		{"empty", "   \n\t", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNewCorpus_Errors(t *testing.T) {
	_, err := NewCorpus("v", nil)
	assert.True(t, errors.Is(err, ErrCorpusUnavailable))

	_, err = NewCorpus("v", map[string]string{"has space": "x"})
	assert.True(t, errors.Is(err, ErrCorpusUnavailable))

	_, err = NewCorpus("v", map[string]string{"": "x"})
	assert.True(t, errors.Is(err, ErrCorpusUnavailable))
}

func TestCorpus_Accessors(t *testing.T) {
	c := testCorpus(t)
	assert.Equal(t, "test-1", c.Version())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, c.IDs())

	text, ok := c.Text("Beta")
	require.True(t, ok)
	assert.Equal(t, betaText, text)

	_, ok = c.Text("Delta")
	assert.False(t, ok)
}

func TestNew_RequiresCorpus(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrCorpusUnavailable)
}

func TestAnalyze_ExactMatch(t *testing.T) {
	cl, err := New(testCorpus(t))
	require.NoError(t, err)

	for id, text := range map[string]string{"Alpha": alphaText, "Beta": betaText, "Gamma": gammaText} {
		res := cl.Analyze(text)
		assert.Equal(t, id, res.License)
		assert.Equal(t, 1.0, res.Score)
	}
}

func TestAnalyze_NormalisationIsTransparent(t *testing.T) {
	cl, err := New(testCorpus(t))
	require.NoError(t, err)

	res := cl.Analyze("Copyright 2024 ACME Corp.\n\n  PERMISSION is granted to use, copy, modify,\r\nand distribute this software for any purpose.\n")
	assert.Equal(t, "Alpha", res.License)
	assert.Equal(t, 1.0, res.Score)
}

func TestAnalyze_NearMatch(t *testing.T) {
	cl, err := New(testCorpus(t))
	require.NoError(t, err)

	// 14 words, one substituted.
	res := cl.Analyze("Permission is granted to use copy change and distribute this software for any purpose")
	assert.Equal(t, "Alpha", res.License)
	assert.InDelta(t, 13.0/14.0, res.Score, 1e-9)
}

func TestAnalyze_Unrelated(t *testing.T) {
	cl, err := New(testCorpus(t))
	require.NoError(t, err)

	res := cl.Analyze("lorem ipsum dolor sit amet")
	assert.GreaterOrEqual(t, res.Score, 0.0)
	assert.Less(t, res.Score, 0.5)
	assert.Contains(t, []string{"Alpha", "Beta", "Gamma"}, res.License)
}

func TestAnalyze_TieGoesToSmallestID(t *testing.T) {
	c, err := NewCorpus("v", map[string]string{
		"Zeta":  "same words here",
		"Alpha": "Same, words; here!",
		"Mu":    "other words entirely",
	})
	require.NoError(t, err)
	cl, err := New(c)
	require.NoError(t, err)

	res := cl.Analyze("same words here")
	assert.Equal(t, "Alpha", res.License)
	assert.Equal(t, 1.0, res.Score)

	// No shared words with anything: every score is zero.
	res = cl.Analyze("qqq")
	assert.Equal(t, "Alpha", res.License)
	assert.Equal(t, 0.0, res.Score)
}

func TestAnalyze_EmptyText(t *testing.T) {
	c, err := NewCorpus("v", map[string]string{"B": "", "C": "words"})
	require.NoError(t, err)
	cl, err := New(c)
	require.NoError(t, err)

	res := cl.Analyze("Copyright (c) nobody")
	assert.Equal(t, "B", res.License)
	assert.Equal(t, 1.0, res.Score)
}

func TestAnalyze_Deterministic(t *testing.T) {
	cl, err := New(testCorpus(t))
	require.NoError(t, err)

	in := "provided as is with warranty of some kind"
	first := cl.Analyze(in)
	for range 20 {
		assert.Equal(t, first, cl.Analyze(in))
	}
}

func TestAnalyze_CacheReturnsSameResult(t *testing.T) {
	cached, err := New(testCorpus(t), WithCacheSize(8))
	require.NoError(t, err)
	plain, err := New(testCorpus(t), WithCacheSize(0))
	require.NoError(t, err)

	in := "Redistribution and use in source forms are permitted"
	want := plain.Analyze(in)
	assert.Equal(t, want, cached.Analyze(in))
	assert.Equal(t, want, cached.Analyze(in))
	assert.Equal(t, 1, cached.memo.Len())
}

func TestAnalyze_Concurrent(t *testing.T) {
	cl, err := New(testCorpus(t), WithCacheSize(2))
	require.NoError(t, err)

	inputs := []string{alphaText, betaText, gammaText, "something else", ""}
	want := make([]string, len(inputs))
	for i, in := range inputs {
		want[i] = cl.Analyze(in).License
	}

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 50 {
				k := (g + i) % len(inputs)
				if got := cl.Analyze(inputs[k]).License; got != want[k] {
					t.Errorf("input %d: got %s, want %s", k, got, want[k])
				}
			}
		}()
	}
	wg.Wait()
}
