package repositories

// RepositoryProvider bundles the repositories a storage backend provides.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
	ReferenceRepo   ReferenceRepositoryFacade
}
