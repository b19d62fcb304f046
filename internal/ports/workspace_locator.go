package ports

// WorkspaceLocator finds a project root (the directory holding licbom.yaml)
// starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
