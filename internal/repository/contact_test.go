package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/productapp/api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAccount(t *testing.T, conn *sqlx.DB, email string) *model.Account {
	t.Helper()
	account := newTestAccount(email)
	require.NoError(t, NewAccountRepository(conn).Create(account))
	return account
}

func newTestContact(accountID, name string, favorite bool) *model.Contact {
	return &model.Contact{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      name,
		Email:     name + "@contacts.example.com",
		Phone:     "(123) 456-7890",
		Favorite:  favorite,
		CreatedAt: time.Now().UTC(),
	}
}

func TestContactCRUD(t *testing.T) {
	conn := testDB(t)
	repo := NewContactRepository(conn)
	owner := seedAccount(t, conn, "owner@x.com")

	contact := newTestContact(owner.ID, "alice", false)
	require.NoError(t, repo.Create(contact))

	stored, err := repo.ByID(owner.ID, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Name)
	assert.False(t, stored.Favorite)

	stored.Name = "alice b"
	stored.Phone = "(999) 999-9999"
	require.NoError(t, repo.Update(stored))

	updated, err := repo.ByID(owner.ID, contact.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice b", updated.Name)
	assert.Equal(t, "(999) 999-9999", updated.Phone)

	require.NoError(t, repo.SetFavorite(owner.ID, contact.ID, true))
	updated, err = repo.ByID(owner.ID, contact.ID)
	require.NoError(t, err)
	assert.True(t, updated.Favorite)

	require.NoError(t, repo.Delete(owner.ID, contact.ID))
	_, err = repo.ByID(owner.ID, contact.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	assert.ErrorIs(t, repo.Delete(owner.ID, contact.ID), ErrContactNotFound)
}

func TestContactsAreScopedToTheirAccount(t *testing.T) {
	conn := testDB(t)
	repo := NewContactRepository(conn)
	owner := seedAccount(t, conn, "owner@x.com")
	other := seedAccount(t, conn, "other@x.com")

	contact := newTestContact(owner.ID, "alice", false)
	require.NoError(t, repo.Create(contact))

	_, err := repo.ByID(other.ID, contact.ID)
	assert.ErrorIs(t, err, ErrContactNotFound)

	assert.ErrorIs(t, repo.SetFavorite(other.ID, contact.ID, true), ErrContactNotFound)
	assert.ErrorIs(t, repo.Delete(other.ID, contact.ID), ErrContactNotFound)

	// still reachable by the owner
	_, err = repo.ByID(owner.ID, contact.ID)
	assert.NoError(t, err)
}

func TestContactListPaginationAndFilter(t *testing.T) {
	conn := testDB(t)
	repo := NewContactRepository(conn)
	owner := seedAccount(t, conn, "owner@x.com")

	base := time.Now().UTC()
	for i := 0; i < 25; i++ {
		contact := newTestContact(owner.ID, fmt.Sprintf("contact-%02d", i), i%5 == 0)
		contact.CreatedAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(contact))
	}

	page1, total, err := repo.List(owner.ID, ContactFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "contact-00", page1[0].Name)

	page3, total, err := repo.List(owner.ID, ContactFilter{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, page3, 5)

	// defaults kick in for zero values
	defaulted, _, err := repo.List(owner.ID, ContactFilter{})
	require.NoError(t, err)
	assert.Len(t, defaulted, 20)

	favorite := true
	favorites, total, err := repo.List(owner.ID, ContactFilter{Favorite: &favorite, Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, favorites, 5)
	for _, c := range favorites {
		assert.True(t, c.Favorite)
	}

	notFavorite := false
	_, total, err = repo.List(owner.ID, ContactFilter{Favorite: &notFavorite, Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, 20, total)
}

func TestContactsDeletedWithAccount(t *testing.T) {
	conn := testDB(t)
	repo := NewContactRepository(conn)
	owner := seedAccount(t, conn, "owner@x.com")

	require.NoError(t, repo.Create(newTestContact(owner.ID, "alice", false)))

	_, err := conn.Exec(`DELETE FROM accounts WHERE id = $1`, owner.ID)
	require.NoError(t, err)

	_, total, err := repo.List(owner.ID, ContactFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
