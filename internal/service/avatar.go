package service

import (
	"bytes"
	"crypto/md5"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/productapp/api/internal/repository"
	"github.com/productapp/api/internal/storage"
)

var ErrInvalidImage = errors.New("uploaded file is not a valid image")

const avatarSize = 250

// DeriveAvatarURL returns the default avatar for an email: a Gravatar
// identicon keyed by the MD5 of the lowercased address.
func DeriveAvatarURL(email string) string {
	hash := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?d=identicon&s=%d", hash, avatarSize)
}

// AvatarService processes uploaded avatar images and stores them in the
// object store.
type AvatarService struct {
	accounts repository.AccountRepository
	storage  storage.Storage
}

func NewAvatarService(accounts repository.AccountRepository, storage storage.Storage) *AvatarService {
	return &AvatarService{
		accounts: accounts,
		storage:  storage,
	}
}

// ProcessUpload resizes the uploaded image to a 250x250 JPEG, stores it, and
// persists the resulting URL on the account.
func (s *AvatarService) ProcessUpload(accountID string, upload io.Reader) (string, error) {
	img, err := imaging.Decode(upload)
	if err != nil {
		return "", ErrInvalidImage
	}

	thumb := imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(90))
	if err != nil {
		return "", fmt.Errorf("failed to encode image: %w", err)
	}

	path := fmt.Sprintf("avatars/%s-%d.jpg", accountID, time.Now().Unix())
	err = s.storage.Save(path, &buf)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	url := s.storage.URL(path)
	err = s.accounts.SetAvatarURL(accountID, url)
	if err != nil {
		return "", fmt.Errorf("failed to update avatar URL: %w", err)
	}

	return url, nil
}
