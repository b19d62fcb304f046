package fslicense

import (
	"errors"
	"os"
	"unicode/utf8"

	"github.com/dice-group/tentris-license-aggregator/internal/domain"
	"github.com/dice-group/tentris-license-aggregator/internal/ports"
)

var errNotUTF8 = errors.New("file is not valid UTF-8")

// Reader reads license files from the local filesystem.
type Reader struct{}

func NewReader() *Reader { return &Reader{} }

var _ ports.LicenseReader = (*Reader)(nil)

func (r *Reader) ReadLicense(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, os.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return "", &domain.OpError{Op: "fslicense.read", Kind: kind, Path: path, Err: err}
	}
	if !utf8.Valid(b) {
		return "", &domain.OpError{Op: "fslicense.read", Kind: domain.KindInvalidConfig, Path: path, Err: errNotUTF8}
	}
	return string(b), nil
}
