package ports

import "github.com/dice-group/tentris-license-aggregator/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
