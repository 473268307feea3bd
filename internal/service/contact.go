package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/productapp/api/internal/model"
	"github.com/productapp/api/internal/repository"
)

// ContactService manages the contact records owned by an account.
type ContactService struct {
	contacts repository.ContactRepository
}

func NewContactService(contacts repository.ContactRepository) *ContactService {
	return &ContactService{contacts: contacts}
}

// ContactPage is one page of an account's contacts.
type ContactPage struct {
	Contacts    []*model.Contact
	TotalPages  int
	CurrentPage int
}

func (s *ContactService) List(accountID string, filter repository.ContactFilter) (*ContactPage, error) {
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	contacts, total, err := s.contacts.List(accountID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	totalPages := (total + filter.Limit - 1) / filter.Limit
	return &ContactPage{
		Contacts:    contacts,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
	}, nil
}

func (s *ContactService) ByID(accountID, id string) (*model.Contact, error) {
	return s.contacts.ByID(accountID, id)
}

func (s *ContactService) Add(accountID, name, email, phone string, favorite bool) (*model.Contact, error) {
	contact := &model.Contact{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Favorite:  favorite,
		CreatedAt: time.Now(),
	}

	err := s.contacts.Create(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

func (s *ContactService) Update(accountID, id, name, email, phone string, favorite bool) (*model.Contact, error) {
	contact, err := s.contacts.ByID(accountID, id)
	if err != nil {
		return nil, err
	}

	contact.Name = name
	contact.Email = email
	contact.Phone = phone
	contact.Favorite = favorite

	err = s.contacts.Update(contact)
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (s *ContactService) SetFavorite(accountID, id string, favorite bool) (*model.Contact, error) {
	err := s.contacts.SetFavorite(accountID, id, favorite)
	if err != nil {
		return nil, err
	}

	return s.contacts.ByID(accountID, id)
}

func (s *ContactService) Remove(accountID, id string) error {
	return s.contacts.Delete(accountID, id)
}
