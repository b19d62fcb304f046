package ports

import "github.com/dice-group/tentris-license-aggregator/internal/domain"

// LicenseAnalyzer identifies license text. Implementations must be safe for
// concurrent use.
type LicenseAnalyzer interface {
	Analyze(text string) domain.Classification
}
