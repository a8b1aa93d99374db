package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Account            AccountSvcFacade
	ExchangeRate       ExchangeRateSvcFacade
	Journal            JournalSvcFacade
	DocumentPosting    DocumentPostingSvc
	TransactionPosting TransactionPostingSvc
	Document           DocumentSvcFacade
}

// ReportCacheInvalidator drops cached report aggregates. Implementations must
// be safe to call after a commit; callers treat any error as non-fatal.
type ReportCacheInvalidator interface {
	InvalidateReports(ctx context.Context, tenantID string, pattern string) error
}
