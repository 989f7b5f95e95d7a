package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/maritimetq/talentquest/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

type fakeEnsurer struct {
	calls   int
	email   string
	created bool
	err     error
}

func (f *fakeEnsurer) EnsureAdmin(_ context.Context, email, _, _ string) (bool, error) {
	f.calls++
	f.email = email
	return f.created, f.err
}

func TestCreateDefaultData(t *testing.T) {
	cfg := &config.Config{}

	f := &fakeEnsurer{}
	assert.NoError(t, CreateDefaultData(context.Background(), cfg, f, zerolog.Nop()))
	assert.Zero(t, f.calls, "no seed credentials, no call")

	cfg.Admin.SeedEmail = "admin@example.com"
	cfg.Admin.SeedPassword = "harbor2026"
	f = &fakeEnsurer{created: true}
	assert.NoError(t, CreateDefaultData(context.Background(), cfg, f, zerolog.Nop()))
	assert.Equal(t, "admin@example.com", f.email)

	boom := errors.New("db down")
	f = &fakeEnsurer{err: boom}
	assert.ErrorIs(t, CreateDefaultData(context.Background(), cfg, f, zerolog.Nop()), boom)
}
