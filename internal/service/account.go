package service

import (
	"errors"
	"fmt"

	"github.com/productapp/api/internal/model"
	"github.com/productapp/api/internal/repository"
)

var ErrInvalidSubscription = errors.New("invalid subscription tier")

// AccountService covers profile mutations outside the identity lifecycle.
type AccountService struct {
	accounts repository.AccountRepository
}

func NewAccountService(accounts repository.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

func (s *AccountService) UpdateSubscription(accountID, tier string) (*model.Account, error) {
	if !model.ValidSubscription(tier) {
		return nil, ErrInvalidSubscription
	}

	err := s.accounts.SetSubscription(accountID, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	account, err := s.accounts.ByID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	account.PasswordHash = ""
	return account, nil
}
