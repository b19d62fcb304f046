package domain

// WorkspaceSpec describes where `licbom init` writes its files.
type WorkspaceSpec struct {
	Root string
}
