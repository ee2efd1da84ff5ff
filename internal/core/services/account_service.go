package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/bizbooks_backend/internal/apperrors"
	"github.com/SscSPs/bizbooks_backend/internal/cache"
	"github.com/SscSPs/bizbooks_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/bizbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bizbooks_backend/internal/core/ports/services"
	"github.com/SscSPs/bizbooks_backend/internal/dto"
	"github.com/SscSPs/bizbooks_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountReportCache makes account changes invalidate the owner's cached reports.
func WithAccountReportCache(reports *cache.Reports) AccountServiceOption {
	return func(s *accountService) {
		s.Reports = reports
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, ownerID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	accountType, ok := domain.ParseAccountType(string(req.AccountType))
	if !ok {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown account type '%s'", req.AccountType))
	}
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, apperrors.NewValidationError("account code and name are required")
	}

	now := s.now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerID:     ownerID,
		Code:        code,
		Name:        name,
		AccountType: accountType,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("code", code))
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("account code %s already exists: %w", code, err)
		}
		return nil, fmt.Errorf("failed to save account: %w", err)
	}
	s.invalidateReports(ctx, ownerID)

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, ownerID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("account", accountID)
		}
		s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to find account: %w", err)
	}
	// other owners' accounts are reported as missing
	if account.OwnerID != ownerID {
		return nil, apperrors.NewNotFoundError("account", accountID)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOwner(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounting.SortedChart(accounts), nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, ownerID string, accountID string) error {
	account, err := s.GetAccountByID(ctx, ownerID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return apperrors.NewConflictError(fmt.Sprintf("account %s is already inactive", accountID))
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, ownerID, s.now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.invalidateReports(ctx, ownerID)

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
