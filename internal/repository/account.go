package repository

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/productapp/api/internal/model"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrDuplicateEmail  = errors.New("email already exists")
	ErrCodeNotFound    = errors.New("verification code not found")
)

type AccountRepository interface {
	Create(account *model.Account) error
	ByID(id string) (*model.Account, error)
	ByEmail(email string) (*model.Account, error)
	SetToken(id, token string) error
	ClearToken(id string) error
	SetVerificationCode(id, code string) error
	ConsumeVerificationCode(code string) (*model.Account, error)
	SetSubscription(id, tier string) error
	SetAvatarURL(id, url string) error
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(account *model.Account) error {
	query := `
		INSERT INTO accounts (id, email, password_hash, subscription, avatar_url, token, verified, verification_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.Subscription,
		account.AvatarURL,
		account.Token,
		account.Verified,
		account.VerificationCode,
		account.CreatedAt,
	)
	if err != nil {
		// Unique constraint message differs between SQLite and PostgreSQL
		errStr := err.Error()
		if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "duplicate key value") {
			return ErrDuplicateEmail
		}
		return err
	}

	return nil
}

func (r *accountRepository) ByID(id string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE id = $1`

	err := r.db.Get(account, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

func (r *accountRepository) ByEmail(email string) (*model.Account, error) {
	account := &model.Account{}
	query := `SELECT * FROM accounts WHERE email = $1`

	err := r.db.Get(account, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrAccountNotFound
	}

	return account, err
}

// SetToken stores the bearer token issued by the most recent login. A single
// UPDATE keyed by id, so concurrent logins race with last-write-wins.
func (r *accountRepository) SetToken(id, token string) error {
	query := `UPDATE accounts SET token = $1 WHERE id = $2`

	result, err := r.db.Exec(query, token, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrAccountNotFound)
}

// ClearToken is idempotent: clearing an already-null token is a no-op.
func (r *accountRepository) ClearToken(id string) error {
	query := `UPDATE accounts SET token = NULL WHERE id = $1`

	result, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrAccountNotFound)
}

func (r *accountRepository) SetVerificationCode(id, code string) error {
	query := `UPDATE accounts SET verification_code = $1 WHERE id = $2`

	result, err := r.db.Exec(query, code, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrAccountNotFound)
}

// ConsumeVerificationCode atomically flips the account to verified and clears
// the code. The conditional UPDATE with RETURNING guarantees at-most-once
// consumption: of two concurrent requests with the same code, only one can
// match the WHERE clause.
func (r *accountRepository) ConsumeVerificationCode(code string) (*model.Account, error) {
	account := &model.Account{}
	query := `
		UPDATE accounts
		SET verified = TRUE, verification_code = NULL
		WHERE verification_code = $1
		AND verified = FALSE
		RETURNING *
	`

	err := r.db.Get(account, query, code)
	if err == sql.ErrNoRows {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (r *accountRepository) SetSubscription(id, tier string) error {
	query := `UPDATE accounts SET subscription = $1 WHERE id = $2`

	result, err := r.db.Exec(query, tier, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrAccountNotFound)
}

func (r *accountRepository) SetAvatarURL(id, url string) error {
	query := `UPDATE accounts SET avatar_url = $1 WHERE id = $2`

	result, err := r.db.Exec(query, url, id)
	if err != nil {
		return err
	}
	return requireRow(result, ErrAccountNotFound)
}

func requireRow(result sql.Result, notFound error) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return notFound
	}
	return nil
}
