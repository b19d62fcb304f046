// Package corpuscache loads the license corpus from the embedded default set,
// from a directory of <ID>.txt files, or from a zstd compressed cache file.
package corpuscache

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/dice-group/tentris-license-aggregator/internal/classify"
	"github.com/dice-group/tentris-license-aggregator/internal/domain"
)

// EmbeddedVersion identifies the corpus compiled into the binary.
const EmbeddedVersion = "embedded-1"

const formatVersion = 1

//go:embed licenses/*.txt
var embedded embed.FS

type cacheFile struct {
	Format   int            `json:"format"`
	Version  string         `json:"version"`
	Licenses []cacheLicense `json:"licenses"`
}

type cacheLicense struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Default returns the embedded corpus.
func Default() (*classify.Corpus, error) {
	sub, err := fs.Sub(embedded, "licenses")
	if err != nil {
		return nil, unavailable("corpus.embedded", "", err)
	}
	texts, err := readTexts(sub)
	if err != nil {
		return nil, unavailable("corpus.embedded", "", err)
	}
	return build("corpus.embedded", "", EmbeddedVersion, texts)
}

// LoadDir reads every <ID>.txt file in dir. The corpus version is the
// directory's base name.
func LoadDir(dir string) (*classify.Corpus, error) {
	texts, err := readTexts(os.DirFS(dir))
	if err != nil {
		return nil, unavailable("corpus.read_dir", dir, err)
	}
	return build("corpus.read_dir", dir, filepath.Base(filepath.Clean(dir)), texts)
}

// Load reads a cache file written by Save.
func Load(file string) (*classify.Corpus, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, unavailable("corpus.open", file, err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, unavailable("corpus.decompress", file, err)
	}
	defer dec.Close()

	var cf cacheFile
	if err := json.NewDecoder(dec).Decode(&cf); err != nil {
		return nil, unavailable("corpus.decode", file, err)
	}
	if cf.Format != formatVersion {
		return nil, unavailable("corpus.decode", file, fmt.Errorf("unsupported cache format %d", cf.Format))
	}

	texts := make(map[string]string, len(cf.Licenses))
	for _, l := range cf.Licenses {
		if _, dup := texts[l.ID]; dup {
			return nil, unavailable("corpus.decode", file, fmt.Errorf("duplicate license id %q", l.ID))
		}
		texts[l.ID] = l.Text
	}
	return build("corpus.decode", file, cf.Version, texts)
}

// Save writes c to file as zstd compressed JSON. The file is replaced
// atomically.
func Save(file string, c *classify.Corpus) error {
	cf := cacheFile{Format: formatVersion, Version: c.Version()}
	for _, id := range c.IDs() {
		text, _ := c.Text(id)
		cf.Licenses = append(cf.Licenses, cacheLicense{ID: id, Text: text})
	}

	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &domain.OpError{Op: "corpus.mkdir", Kind: domain.KindExecution, Path: dir, Err: err}
		}
	}

	tmp := file + ".tmp"
	if err := writeCache(tmp, cf); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "corpus.write", Kind: domain.KindExecution, Path: tmp, Err: err}
	}
	if err := os.Rename(tmp, file); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{Op: "corpus.rename", Kind: domain.KindExecution, Path: file, Err: err}
	}
	return nil
}

// Resolve picks the loader for p: the embedded corpus when p is empty,
// LoadDir for a directory and Load otherwise.
func Resolve(p string) (*classify.Corpus, error) {
	p = strings.TrimSpace(p)
	if p == "" {
		return Default()
	}
	st, err := os.Stat(p)
	if err != nil {
		return nil, unavailable("corpus.stat", p, err)
	}
	if st.IsDir() {
		return LoadDir(p)
	}
	return Load(p)
}

func writeCache(file string, cf cacheFile) error {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return err
	}
	if err := json.NewEncoder(enc).Encode(cf); err != nil {
		_ = enc.Close()
		_ = f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func readTexts(fsys fs.FS) (map[string]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}
	texts := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".txt" {
			continue
		}
		b, err := fs.ReadFile(fsys, e.Name())
		if err != nil {
			return nil, err
		}
		texts[strings.TrimSuffix(e.Name(), ".txt")] = string(b)
	}
	return texts, nil
}

func build(op, p, version string, texts map[string]string) (*classify.Corpus, error) {
	c, err := classify.NewCorpus(version, texts)
	if err != nil {
		return nil, unavailable(op, p, err)
	}
	return c, nil
}

func unavailable(op, p string, err error) error {
	if !errors.Is(err, classify.ErrCorpusUnavailable) {
		err = fmt.Errorf("%w: %w", classify.ErrCorpusUnavailable, err)
	}
	return &domain.OpError{Op: op, Kind: domain.KindCorpusUnavailable, Path: p, Err: err}
}
