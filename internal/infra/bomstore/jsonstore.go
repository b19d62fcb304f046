package bomstore

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
)

type JSONStore struct {
	indexPath string
	now       func() time.Time
}

type Option func(*JSONStore)

// WithIndex appends one JSONL line per saved BOM to path.
func WithIndex(path string) Option {
	return func(s *JSONStore) { s.indexPath = path }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

func NewJSONStore(opts ...Option) *JSONStore {
	s := &JSONStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.BOMStore = (*JSONStore)(nil)

// Encode writes pkgs as an indented JSON array. HTML characters are kept
// as-is since license texts are full of "<year>" placeholders.
func Encode(w io.Writer, pkgs []domain.Package) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(normalize(pkgs))
}

// Save writes the BOM to path through a temporary file and a rename, so
// readers never see a partial file.
func (s *JSONStore) Save(path string, pkgs []domain.Package) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &domain.OpError{
			Op:   "bomstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	var buf bytes.Buffer
	if err := Encode(&buf, pkgs); err != nil {
		return &domain.OpError{
			Op:   "bomstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return &domain.OpError{
			Op:   "bomstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "bomstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.indexPath != "" {
		_ = s.appendIndex(path, pkgs)
	}
	return nil
}

func (s *JSONStore) appendIndex(path string, pkgs []domain.Package) error {
	type idx struct {
		File        string    `json:"file"`
		Packages    int       `json:"packages"`
		Files       int       `json:"license_files"`
		GeneratedAt time.Time `json:"generated_at"`
	}

	files := 0
	for _, p := range pkgs {
		files += len(p.LicenseFiles)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	line, err := json.Marshal(idx{
		File:        abs,
		Packages:    len(pkgs),
		Files:       files,
		GeneratedAt: s.now().UTC(),
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.indexPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(s.indexPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// normalize returns a copy where absent file lists encode as [] rather than
// null. The input is not mutated.
func normalize(pkgs []domain.Package) []domain.Package {
	out := make([]domain.Package, len(pkgs))
	for i, p := range pkgs {
		if p.LicenseFiles == nil {
			p.LicenseFiles = []domain.LicenseFile{}
		}
		out[i] = p
	}
	return out
}
