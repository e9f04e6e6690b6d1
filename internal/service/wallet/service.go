package wallet

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/evsync/evsync/internal/domain"
	"github.com/evsync/evsync/internal/infrastructure/keylock"
	"github.com/evsync/evsync/internal/ports"
)

// Service implements ports.WalletService. All balance mutations for one
// account are serialized through a per-account mutex so the
// check-then-act on Debit cannot interleave.
type Service struct {
	repo  ports.WalletRepository
	locks *keylock.KeyedMutex
	log   *zap.Logger
}

// NewService creates a new wallet service
func NewService(repo ports.WalletRepository, log *zap.Logger) *Service {
	return &Service{
		repo:  repo,
		locks: keylock.New(),
		log:   log,
	}
}

// GetWallet retrieves or lazily creates an account's wallet.
func (s *Service) GetWallet(ctx context.Context, accountID string) (*domain.Wallet, error) {
	wallet, err := s.repo.FindByAccountID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	if wallet == nil {
		wallet = &domain.Wallet{
			ID:        uuid.New().String(),
			AccountID: accountID,
			Balance:   0,
			Currency:  "EUR",
			UpdatedAt: time.Now(),
		}

		if err := s.repo.Save(ctx, wallet); err != nil {
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}

		s.log.Info("Created new wallet",
			zap.String("account_id", accountID),
			zap.String("wallet_id", wallet.ID),
		)
	}

	return wallet, nil
}

// Credit adds funds to the wallet (top-up).
func (s *Service) Credit(ctx context.Context, accountID string, amount float64, referenceID string) error {
	if amount <= 0 {
		return domain.NewValidation("amount", "must be positive")
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	wallet, err := s.GetWallet(ctx, accountID)
	if err != nil {
		return err
	}

	newBalance := wallet.Balance + amount
	wallet.Balance = newBalance
	wallet.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, wallet); err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	s.recordEntry(ctx, wallet, accountID, "credit", amount, newBalance, "Funds added to wallet", referenceID)

	s.log.Info("Funds added to wallet",
		zap.String("account_id", accountID),
		zap.Float64("amount", amount),
		zap.Float64("new_balance", newBalance),
	)

	return nil
}

// Debit removes funds from the wallet. The balance is never allowed to go
// negative: an insufficient balance fails the whole operation with no
// mutation.
func (s *Service) Debit(ctx context.Context, accountID string, amount float64, description, referenceID string) error {
	if amount <= 0 {
		return domain.NewValidation("amount", "must be positive")
	}

	unlock := s.locks.Lock(accountID)
	defer unlock()

	wallet, err := s.GetWallet(ctx, accountID)
	if err != nil {
		return err
	}

	if wallet.Balance < amount {
		return &domain.InsufficientFundsError{
			AccountID: accountID,
			Required:  amount,
			Available: wallet.Balance,
		}
	}

	newBalance := wallet.Balance - amount
	wallet.Balance = newBalance
	wallet.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, wallet); err != nil {
		return fmt.Errorf("failed to update wallet balance: %w", err)
	}

	s.recordEntry(ctx, wallet, accountID, "debit", amount, newBalance, description, referenceID)

	s.log.Info("Funds deducted from wallet",
		zap.String("account_id", accountID),
		zap.Float64("amount", amount),
		zap.Float64("new_balance", newBalance),
	)

	return nil
}

// GetTransactions retrieves the wallet ledger, newest first.
func (s *Service) GetTransactions(ctx context.Context, accountID string, limit, offset int) ([]domain.WalletTransaction, error) {
	wallet, err := s.GetWallet(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return s.repo.FindTransactions(ctx, wallet.ID, limit, offset)
}

func (s *Service) recordEntry(ctx context.Context, wallet *domain.Wallet, accountID, kind string, amount, balance float64, description, referenceID string) {
	entry := &domain.WalletTransaction{
		ID:          uuid.New().String(),
		WalletID:    wallet.ID,
		AccountID:   accountID,
		Type:        kind,
		Amount:      amount,
		Balance:     balance,
		Description: description,
		ReferenceID: referenceID,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.SaveTransaction(ctx, entry); err != nil {
		s.log.Error("Failed to save wallet transaction",
			zap.String("wallet_id", wallet.ID),
			zap.Error(err),
		)
	}
}
