package domain

import (
	"github.com/dice-group/tentris-license-aggregator/internal/spdx"
)

// LicenseFile is one license text attached to a package.
type LicenseFile struct {
	// Name is the file name, without directories.
	Name string `json:"name"`
	// SPDX is the identifier of the license, if known.
	SPDX *string `json:"spdx"`
	Text string  `json:"text"`
}

// Package is one entry of the bill of licenses.
type Package struct {
	Name    string  `json:"package_name"`
	Version string  `json:"package_version"`
	URL     *string `json:"package_url"`
	// LicenseSPDX is the combined expression for the package, e.g. "MIT OR Apache-2.0".
	LicenseSPDX  *string       `json:"license_spdx"`
	LicenseFiles []LicenseFile `json:"license_files"`
}

// Label identifies the package in diagnostics and errors.
func (p Package) Label() string {
	return p.Name + " " + p.Version
}

// LicenseInfoKind tells how a graph package declared its license.
type LicenseInfoKind string

const (
	LicenseExpr    LicenseInfoKind = "expr"
	LicenseUnknown LicenseInfoKind = "unknown"
	LicenseIgnore  LicenseInfoKind = "ignore"
)

// LicenseInfo is the declared license of a graph package.
type LicenseInfo struct {
	Kind LicenseInfoKind
	Expr spdx.Expression
	// Raw keeps the declared text when it could not be parsed.
	Raw string
}

// LicenseFileRef is a license file declared by a graph package.
type LicenseFileRef struct {
	Path    string
	License string
}

// GraphPackage is a package as produced by a dependency-graph traversal.
type GraphPackage struct {
	Name         string
	Version      string
	Repository   string
	Homepage     string
	ManifestPath string
	License      LicenseInfo
	LicenseFiles []LicenseFileRef
	// Metadata is the free-form metadata document of the package.
	Metadata any
}

func (p GraphPackage) Label() string {
	return p.Name + " " + p.Version
}

// Classification is the outcome of matching text against the license corpus.
type Classification struct {
	License string  `json:"license"`
	Score   float64 `json:"score"`
}
