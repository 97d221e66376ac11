package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/brightpaths/org-system/internal/api/metrics"
	"github.com/brightpaths/org-system/internal/core/domain"
	"github.com/brightpaths/org-system/internal/core/ports"
)

// CascadePropagator pushes program/site changes down a subtree.
type CascadePropagator struct {
	tree  *OrgTree
	users ports.UserRepository
	log   zerolog.Logger
}

func NewCascadePropagator(tree *OrgTree, users ports.UserRepository, log zerolog.Logger) *CascadePropagator {
	return &CascadePropagator{tree: tree, users: users, log: log}
}

// Propagate overwrites inherited attributes on every descendant of
// ancestorID in one pass over the depth-bounded descendant set:
//
//   - inherited nodes (frontline-staff) get program and sites replaced with
//     the given values;
//   - single-site nodes (site-supervisor) derive their program from the
//     ancestor, so program is replaced while their own chosen site is kept.
//
// Nodes already carrying the target values are skipped, so re-running with
// the same arguments is a no-op. Returns the number of nodes updated.
func (p *CascadePropagator) Propagate(ctx context.Context, ancestorID, program string, sites []string) (int, error) {
	descendants, err := p.tree.DescendantsOf(ctx, ancestorID)
	if err != nil {
		return 0, fmt.Errorf("propagate: %w", err)
	}

	updated := 0
	for _, d := range descendants {
		if !domain.IsOrgRole(d.Role) {
			continue
		}

		var newProgram string
		var newSites []string
		switch domain.AttrMode(d.Role) {
		case domain.AttributeInherited:
			newProgram, newSites = program, sites
		case domain.AttributeSingleSite:
			newProgram, newSites = program, d.Sites
		default:
			continue
		}

		if d.SameAttributes(newProgram, newSites) {
			continue
		}
		if err := p.users.UpdateAttributes(ctx, d.ID, newProgram, newSites); err != nil {
			return updated, fmt.Errorf("propagate to %s: %w", d.ID, err)
		}
		updated++
	}

	if updated > 0 {
		metrics.CascadeNodesUpdatedTotal.Add(float64(updated))
		p.log.Info().Str("ancestor_id", ancestorID).Str("program", program).
			Int("nodes_updated", updated).Msg("attributes cascaded")
	}
	return updated, nil
}
