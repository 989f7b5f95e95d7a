package seed

import (
	"context"

	"github.com/maritimetq/talentquest/internal/config"
	"github.com/rs/zerolog"
)

// AdminEnsurer is satisfied by services.AuthService.
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, email, fullName, password string) (bool, error)
}

// CreateDefaultData creates the first admin account from the admin seed
// settings when no admin exists yet. Without seed credentials it does
// nothing; accounts can then be created with `mtqctl create-admin`.
func CreateDefaultData(ctx context.Context, cfg *config.Config, admins AdminEnsurer, lgr zerolog.Logger) error {
	if cfg.Admin.SeedEmail == "" || cfg.Admin.SeedPassword == "" {
		lgr.Debug().Msg("No admin seed credentials configured, skipping default admin")
		return nil
	}

	created, err := admins.EnsureAdmin(ctx, cfg.Admin.SeedEmail, cfg.Admin.SeedName, cfg.Admin.SeedPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin")
		return err
	}
	if created {
		lgr.Info().Str("email", cfg.Admin.SeedEmail).Msg("Default admin created")
	} else {
		lgr.Debug().Msg("An admin account already exists")
	}
	return nil
}
