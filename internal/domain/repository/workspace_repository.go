package repository

// WorkspaceRepository manages the working directories on disk.
type WorkspaceRepository interface {
	// Provision creates any missing working directory.
	Provision() error
	// ListIncoming returns the incoming files matching "<prefix> *.csv".
	ListIncoming() ([]string, error)
	// Archive moves src into the archive directory without overwriting and returns the new path.
	Archive(src string) (string, error)
}
