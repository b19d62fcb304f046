package domain

// Config represents the licbom configuration loaded from licbom.yaml.
type Config struct {
	Accepted   []string
	Exclude    []string
	Workers    int
	Corpus     CorpusConfig
	ThirdParty ThirdPartyConfig
}

type CorpusConfig struct {
	// Path is empty for the embedded corpus, a directory of <ID>.txt files,
	// or a zstd cache artifact.
	Path          string
	MinConfidence float64
	CacheSize     int
}

type ThirdPartyConfig struct {
	// MetadataPath is a JSONPath into package metadata naming an auxiliary
	// manifest file.
	MetadataPath string
}

// DefaultConfig provides sane defaults if licbom.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Workers: 4,
		Corpus: CorpusConfig{
			MinConfidence: 0.9,
			CacheSize:     512,
		},
		ThirdParty: ThirdPartyConfig{
			MetadataPath: "$.licbom.thirdparty",
		},
	}
}
