package seed

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/eduinsight/eduinsight/internal/app/models"
	appRepos "github.com/eduinsight/eduinsight/internal/app/repositories"
	"github.com/eduinsight/eduinsight/internal/pkg/auth"
)

const (
	defaultAdminEmail    = "admin@eduinsight.local"
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates the default staff account if no user with its
// email exists yet. The password should be changed after first login.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if default staff user exists")
		return err
	}
	if exists {
		lgr.Info().Msg("Default staff user already exists, skipping creation")
		return nil
	}

	lgr.Info().Msg("Creating default staff user...")

	hashedPassword, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default staff password")
		return err
	}

	admin := &appModels.User{
		Email:     defaultAdminEmail,
		Password:  hashedPassword,
		FullName:  "System Administrator",
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default staff user")
		return err
	}

	lgr.Info().Int64("userID", admin.ID).Str("email", defaultAdminEmail).Msg("Default staff user created")
	return nil
}
