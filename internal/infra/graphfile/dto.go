package graphfile

// Graph is the on-disk shape of a resolved dependency graph. The same tags
// serve the JSON and YAML encodings.
type Graph struct {
	Packages []GraphPackage `json:"packages" yaml:"packages"`
}

type GraphPackage struct {
	Name         string        `json:"name" yaml:"name"`
	Version      string        `json:"version" yaml:"version"`
	Repository   string        `json:"repository" yaml:"repository"`
	Homepage     string        `json:"homepage" yaml:"homepage"`
	ManifestPath string        `json:"manifest_path" yaml:"manifest_path"`
	License      string        `json:"license" yaml:"license"`
	Ignore       bool          `json:"ignore" yaml:"ignore"`
	LicenseFiles []LicenseFile `json:"license_files" yaml:"license_files"`
	Metadata     any           `json:"metadata" yaml:"metadata"`
}

type LicenseFile struct {
	Path    string `json:"path" yaml:"path"`
	License string `json:"license" yaml:"license"`
}
