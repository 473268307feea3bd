package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/productapp/api/internal/model"
)

var ErrContactNotFound = errors.New("contact not found")

// ContactFilter narrows List results. A nil Favorite means no filtering.
type ContactFilter struct {
	Favorite *bool
	Page     int
	Limit    int
}

type ContactRepository interface {
	Create(contact *model.Contact) error
	ByID(accountID, id string) (*model.Contact, error)
	List(accountID string, filter ContactFilter) ([]*model.Contact, int, error)
	Update(contact *model.Contact) error
	SetFavorite(accountID, id string, favorite bool) error
	Delete(accountID, id string) error
}

type contactRepository struct {
	db *sqlx.DB
}

func NewContactRepository(db *sqlx.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *model.Contact) error {
	query := `
		INSERT INTO contacts (id, account_id, name, email, phone, favorite, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(query,
		contact.ID,
		contact.AccountID,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Favorite,
		contact.CreatedAt,
	)
	return err
}

func (r *contactRepository) ByID(accountID, id string) (*model.Contact, error) {
	contact := &model.Contact{}
	query := `SELECT * FROM contacts WHERE id = $1 AND account_id = $2`

	err := r.db.Get(contact, query, id, accountID)
	if err == sql.ErrNoRows {
		return nil, ErrContactNotFound
	}

	return contact, err
}

func (r *contactRepository) List(accountID string, filter ContactFilter) ([]*model.Contact, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	where := `WHERE account_id = $1`
	args := []any{accountID}
	if filter.Favorite != nil {
		where += ` AND favorite = $2`
		args = append(args, *filter.Favorite)
	}

	var total int
	err := r.db.Get(&total, `SELECT COUNT(*) FROM contacts `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`SELECT * FROM contacts %s ORDER BY created_at, id LIMIT %d OFFSET %d`, where, filter.Limit, offset)

	contacts := []*model.Contact{}
	err = r.db.Select(&contacts, query, args...)
	if err != nil {
		return nil, 0, err
	}

	return contacts, total, nil
}

func (r *contactRepository) Update(contact *model.Contact) error {
	query := `
		UPDATE contacts SET name = $1, email = $2, phone = $3, favorite = $4
		WHERE id = $5 AND account_id = $6
	`
	result, err := r.db.Exec(query,
		contact.Name,
		contact.Email,
		contact.Phone,
		contact.Favorite,
		contact.ID,
		contact.AccountID,
	)
	if err != nil {
		return err
	}
	return requireRow(result, ErrContactNotFound)
}

func (r *contactRepository) SetFavorite(accountID, id string, favorite bool) error {
	query := `UPDATE contacts SET favorite = $1 WHERE id = $2 AND account_id = $3`

	result, err := r.db.Exec(query, favorite, id, accountID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrContactNotFound)
}

func (r *contactRepository) Delete(accountID, id string) error {
	query := `DELETE FROM contacts WHERE id = $1 AND account_id = $2`

	result, err := r.db.Exec(query, id, accountID)
	if err != nil {
		return err
	}
	return requireRow(result, ErrContactNotFound)
}
