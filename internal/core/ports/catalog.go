package ports

import "context"

// ProgramCatalog is the read-only program → sites reference catalog.
type ProgramCatalog interface {
	// SitesFor returns the valid set of sites for a program. An unknown
	// program yields an empty set, not an error.
	SitesFor(ctx context.Context, program string) ([]string, error)
}
