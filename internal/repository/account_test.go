package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/productapp/api/internal/db"
	"github.com/productapp/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Init("sqlite", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(conn) })

	require.NoError(t, db.RunMigrations(conn.DB, "sqlite"))
	return conn
}

func newTestAccount(email string) *model.Account {
	code := uuid.New().String()
	return &model.Account{
		ID:               uuid.New().String(),
		Email:            email,
		PasswordHash:     "$2a$10$fakefakefakefakefakefake",
		Subscription:     model.SubscriptionStarter,
		Verified:         false,
		VerificationCode: &code,
		CreatedAt:        time.Now().UTC(),
	}
}

func TestAccountCreateAndLookup(t *testing.T) {
	repo := NewAccountRepository(testDB(t))

	account := newTestAccount("a@x.com")
	require.NoError(t, repo.Create(account))

	byID, err := repo.ByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Email, byID.Email)
	assert.Equal(t, model.SubscriptionStarter, byID.Subscription)
	assert.False(t, byID.Verified)
	assert.Nil(t, byID.Token)

	byEmail, err := repo.ByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)

	_, err = repo.ByID("no-such-id")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	_, err = repo.ByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountEmailIsCaseSensitiveAndUnique(t *testing.T) {
	repo := NewAccountRepository(testDB(t))

	require.NoError(t, repo.Create(newTestAccount("a@x.com")))

	err := repo.Create(newTestAccount("a@x.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// a different casing is a different identity
	require.NoError(t, repo.Create(newTestAccount("A@x.com")))

	_, err = repo.ByEmail("A@x.com")
	assert.NoError(t, err)
}

func TestAccountTokenLifecycle(t *testing.T) {
	repo := NewAccountRepository(testDB(t))

	account := newTestAccount("a@x.com")
	require.NoError(t, repo.Create(account))

	require.NoError(t, repo.SetToken(account.ID, "token-one"))
	stored, err := repo.ByID(account.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Token)
	assert.Equal(t, "token-one", *stored.Token)

	// overwrite
	require.NoError(t, repo.SetToken(account.ID, "token-two"))
	stored, err = repo.ByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, "token-two", *stored.Token)

	require.NoError(t, repo.ClearToken(account.ID))
	stored, err = repo.ByID(account.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Token)

	// clearing again is a no-op
	require.NoError(t, repo.ClearToken(account.ID))

	assert.ErrorIs(t, repo.SetToken("no-such-id", "t"), ErrAccountNotFound)
	assert.ErrorIs(t, repo.ClearToken("no-such-id"), ErrAccountNotFound)
}

func TestConsumeVerificationCode(t *testing.T) {
	repo := NewAccountRepository(testDB(t))

	account := newTestAccount("a@x.com")
	code := *account.VerificationCode
	require.NoError(t, repo.Create(account))

	verified, err := repo.ConsumeVerificationCode(code)
	require.NoError(t, err)
	assert.Equal(t, account.ID, verified.ID)
	assert.True(t, verified.Verified)
	assert.Nil(t, verified.VerificationCode)

	// second use of the same code fails: at most once
	_, err = repo.ConsumeVerificationCode(code)
	assert.ErrorIs(t, err, ErrCodeNotFound)

	_, err = repo.ConsumeVerificationCode("never-issued")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestSetVerificationCodeReplacesOld(t *testing.T) {
	repo := NewAccountRepository(testDB(t))

	account := newTestAccount("a@x.com")
	oldCode := *account.VerificationCode
	require.NoError(t, repo.Create(account))

	require.NoError(t, repo.SetVerificationCode(account.ID, "fresh-code"))

	_, err := repo.ConsumeVerificationCode(oldCode)
	assert.ErrorIs(t, err, ErrCodeNotFound)

	verified, err := repo.ConsumeVerificationCode("fresh-code")
	require.NoError(t, err)
	assert.True(t, verified.Verified)
}

func TestAccountUpdates(t *testing.T) {
	repo := NewAccountRepository(testDB(t))

	account := newTestAccount("a@x.com")
	require.NoError(t, repo.Create(account))

	require.NoError(t, repo.SetSubscription(account.ID, model.SubscriptionPro))
	require.NoError(t, repo.SetAvatarURL(account.ID, "https://cdn.example.com/a.jpg"))

	stored, err := repo.ByID(account.ID)
	require.NoError(t, err)
	assert.Equal(t, model.SubscriptionPro, stored.Subscription)
	require.NotNil(t, stored.AvatarURL)
	assert.Equal(t, "https://cdn.example.com/a.jpg", *stored.AvatarURL)

	assert.ErrorIs(t, repo.SetSubscription("no-such-id", model.SubscriptionPro), ErrAccountNotFound)
	assert.ErrorIs(t, repo.SetAvatarURL("no-such-id", "u"), ErrAccountNotFound)
}
