package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/productapp/api/internal/config"
	"github.com/productapp/api/internal/db"
	"github.com/productapp/api/internal/repository"
	"github.com/productapp/api/internal/service"
	"github.com/productapp/api/internal/storage"
)

type App struct {
	Cfg            *config.Config
	DB             *sqlx.DB
	AuthService    *service.AuthService
	AccountService *service.AccountService
	AvatarService  *service.AvatarService
	ContactService *service.ContactService
	EmailService   *service.EmailService
}

func New(cfg *config.Config) (*App, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	accountRepository := repository.NewAccountRepository(database)
	contactRepository := repository.NewContactRepository(database)

	// Storage
	avatarStorage, err := storage.NewS3Storage(storage.S3Config{
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Endpoint:  cfg.S3Endpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %v", err)
	}

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	tokenIssuer := service.NewTokenIssuer(cfg.TokenSecret, cfg.TokenExpiry)
	authService := service.NewAuthService(accountRepository, emailService, tokenIssuer)
	accountService := service.NewAccountService(accountRepository)
	avatarService := service.NewAvatarService(accountRepository, avatarStorage)
	contactService := service.NewContactService(contactRepository)

	return &App{
		Cfg:            cfg,
		DB:             database,
		AuthService:    authService,
		AccountService: accountService,
		AvatarService:  avatarService,
		ContactService: contactService,
		EmailService:   emailService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
