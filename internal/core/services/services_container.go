package services

import (
	"github.com/SscSPs/bizbooks_backend/internal/cache"
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// All services share reports so any write invalidates the owner's cached reports.
func NewServiceContainer(repos portsrepo.RepositoryProvider, reports *cache.Reports) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:   NewAccountService(repos.AccountRepo, WithAccountReportCache(reports)),
		Journal:   NewJournalService(repos.JournalRepo, repos.AccountRepo, WithJournalReportCache(reports)),
		Reporting: NewReportingService(repos.AccountRepo, repos.JournalRepo, repos.DocumentRepo, WithReportCache(reports)),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
