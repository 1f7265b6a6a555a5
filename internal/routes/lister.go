// SPDX-License-Identifier: AGPL-3.0-or-later

package routes

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bartekus/tenancy/internal/logger"
)

// ErrNoRoutes is returned when the tenant's route table is empty.
var ErrNoRoutes = errors.New("the specified tenant does not have any routes")

// Source resolves a tenant domain to its registered routes.
type Source interface {
	RoutesFor(ctx context.Context, domain string) ([]Route, error)
}

// Query holds the per-invocation filter and ordering options.
type Query struct {
	Criteria Criteria
	Sort     SortSpec
}

// Lister runs the listing pipeline: project, filter, sort.
type Lister struct {
	source   Source
	resolver *Resolver
	log      logger.Logger
}

// NewLister creates a lister. A nil log discards output.
func NewLister(source Source, resolver *Resolver, log logger.Logger) *Lister {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Lister{
		source:   source,
		resolver: resolver,
		log:      log,
	}
}

// List returns the tenant's records after filtering and sorting.
// It returns ErrNoRoutes, before any other stage runs, when the tenant has no routes.
func (l *Lister) List(ctx context.Context, domain string, q Query) ([]Record, error) {
	rts, err := l.source.RoutesFor(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("loading routes for %s: %w", domain, err)
	}
	if len(rts) == 0 {
		l.log.DebugWithContext(ctx, "tenant has no routes", zap.String("domain", domain))
		return nil, ErrNoRoutes
	}

	records, err := ProjectAll(rts, l.resolver)
	if err != nil {
		return nil, err
	}

	filtered := Filter(records, q.Criteria)
	l.log.DebugWithContext(ctx, "filtered routes",
		zap.String("domain", domain),
		zap.Int("total", len(records)),
		zap.Int("kept", len(filtered)),
	)

	return Sort(filtered, q.Sort), nil
}
