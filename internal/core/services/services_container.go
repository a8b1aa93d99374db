package services

import (
	portsrepo "github.com/SscSPs/ledger_posting_core/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_posting_core/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// Every service shares the transaction manager and the same options (cache,
// GL code map, entry number prefix).
func NewServiceContainer(txManager portsrepo.TransactionManager, opts ...Option) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:            NewAccountService(txManager, opts...),
		ExchangeRate:       NewExchangeRateService(txManager, opts...),
		Journal:            NewJournalService(txManager, opts...),
		DocumentPosting:    NewDocumentPostingService(txManager, opts...),
		TransactionPosting: NewTransactionPostingService(txManager, opts...),
		Document:           NewDocumentService(txManager, opts...),
	}
}
