package services

import (
	"time"

	"github.com/SscSPs/hrms_ledger/internal/core/ports/cache"
	"github.com/SscSPs/hrms_ledger/internal/core/ports/events"
	portsrepo "github.com/SscSPs/hrms_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hrms_ledger/internal/core/ports/services"
)

// ContainerOptions carries the optional collaborators of the service container.
type ContainerOptions struct {
	Publisher         events.Publisher
	ReferenceCache    cache.Cache
	ReferenceCacheTTL time.Duration
}

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The poster must already be selected (see SelectPoster).
func NewServiceContainer(repos portsrepo.RepositoryProvider, poster Poster, opts ContainerOptions) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	var refOptions []ReferenceServiceOption
	if opts.ReferenceCache != nil {
		refOptions = append(refOptions, WithReferenceCache(opts.ReferenceCache, opts.ReferenceCacheTTL))
	}
	container.Reference = NewReferenceService(repos.ReferenceRepo, refOptions...)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.ReferenceRepo,
		poster,
		WithEventPublisher(opts.Publisher),
	)

	return container
}
