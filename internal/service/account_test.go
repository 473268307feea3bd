package service

import (
	"testing"

	"github.com/productapp/api/internal/model"
	"github.com/productapp/api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSubscription(t *testing.T) {
	repo := newFakeAccountRepository()
	auth := NewAuthService(repo, &fakeNotifier{}, NewTokenIssuer("s", 0))
	svc := NewAccountService(repo)

	account, err := auth.Signup("a@x.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionStarter, account.Subscription)

	for _, tier := range []string{model.SubscriptionPro, model.SubscriptionBusiness, model.SubscriptionStarter} {
		updated, err := svc.UpdateSubscription(account.ID, tier)
		require.NoError(t, err)
		assert.Equal(t, tier, updated.Subscription)
		assert.Empty(t, updated.PasswordHash)
	}
}

func TestUpdateSubscriptionRejectsUnknownTier(t *testing.T) {
	repo := newFakeAccountRepository()
	svc := NewAccountService(repo)

	_, err := svc.UpdateSubscription("any-id", "platinum")
	assert.ErrorIs(t, err, ErrInvalidSubscription)

	_, err = svc.UpdateSubscription("any-id", "")
	assert.ErrorIs(t, err, ErrInvalidSubscription)
}

func TestUpdateSubscriptionUnknownAccount(t *testing.T) {
	svc := NewAccountService(newFakeAccountRepository())

	_, err := svc.UpdateSubscription("no-such-id", model.SubscriptionPro)
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}
