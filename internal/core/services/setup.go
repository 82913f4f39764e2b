package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driving"
	"github.com/custodia-labs/tgsetup/internal/logger"
)

// Ensure SetupService implements the interface.
var _ driving.SetupService = (*SetupService)(nil)

// SetupService logs a user account in and persists the session string.
type SetupService struct {
	envStore driven.EnvStore
	gateway  driven.TelegramGateway
}

// NewSetupService creates a new setup service.
func NewSetupService(envStore driven.EnvStore, gateway driven.TelegramGateway) *SetupService {
	return &SetupService{
		envStore: envStore,
		gateway:  gateway,
	}
}

// LoadSetup reads the env file and validates the API credentials.
func (s *SetupService) LoadSetup(ctx context.Context) (*domain.Setup, error) {
	env, err := s.envStore.Read(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("read %d keys from %s", len(env), s.envStore.Path())

	creds, err := domain.ParseCredentials(env)
	if err != nil {
		return nil, err
	}

	return &domain.Setup{
		Credentials:     creds,
		BackupChannel:   env[domain.KeyBackupChannel],
		ExistingSession: env[domain.KeySessionString],
		EnvPath:         s.envStore.Path(),
	}, nil
}

// Run performs the interactive login and appends USER_SESSION_STRING to the env file.
// A failing backup channel check is reported, not returned.
func (s *SetupService) Run(
	ctx context.Context, setup *domain.Setup, prompter driven.Prompter,
) (*domain.Report, error) {
	if setup == nil {
		return nil, domain.ErrInvalidInput
	}
	if setup.ExistingSession != "" {
		logger.Warn("%s already set in %s, the new session will be appended after it",
			domain.KeySessionString, setup.EnvPath)
	}

	report := &domain.Report{EnvPath: setup.EnvPath}

	err := s.gateway.Run(ctx, setup.Credentials, "", func(ctx context.Context, tg driven.TelegramSession) error {
		logger.Section("Authentication")
		account, err := tg.Authorize(ctx, prompter)
		if err != nil {
			return err
		}
		report.Account = account
		logger.Info("authorized as user %d", account.ID)

		session, err := tg.ExportSession(ctx)
		if err != nil {
			return fmt.Errorf("export session: %w", err)
		}
		report.Session = session

		if err := s.envStore.Append(ctx, domain.KeySessionString, session); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		report.Saved = true

		report.ChannelCheck = s.checkChannel(ctx, tg, setup)
		return nil
	})
	if err != nil {
		return report, err
	}

	return report, nil
}

// Check resumes the stored session and reports who it belongs to.
func (s *SetupService) Check(ctx context.Context, setup *domain.Setup) (*domain.Report, error) {
	if setup == nil {
		return nil, domain.ErrInvalidInput
	}
	if setup.ExistingSession == "" {
		return nil, domain.ErrNoSession
	}

	report := &domain.Report{
		EnvPath: setup.EnvPath,
		Session: setup.ExistingSession,
	}

	err := s.gateway.Run(ctx, setup.Credentials, setup.ExistingSession,
		func(ctx context.Context, tg driven.TelegramSession) error {
			account, err := tg.Self(ctx)
			if err != nil {
				return err
			}
			report.Account = account
			report.ChannelCheck = s.checkChannel(ctx, tg, setup)
			return nil
		})
	if err != nil {
		return report, err
	}

	return report, nil
}

func (s *SetupService) checkChannel(
	ctx context.Context, tg driven.TelegramSession, setup *domain.Setup,
) domain.ChannelCheck {
	check := domain.ChannelCheck{
		Status: domain.ChannelCheckSkipped,
		Raw:    setup.BackupChannel,
	}
	if !setup.HasBackupChannel() {
		return check
	}

	logger.Section("Backup channel")
	id, err := domain.ParseChannelID(setup.BackupChannel)
	if err != nil {
		check.Status = domain.ChannelCheckFailed
		check.Err = err
		return check
	}

	channel, err := tg.ResolveChannel(ctx, id)
	if err != nil {
		logger.Debug("channel %d: %v", id, err)
		check.Status = domain.ChannelCheckFailed
		check.Err = err
		return check
	}

	logger.Debug("resolved channel %d (%s)", channel.ID, channel.Title)
	check.Status = domain.ChannelCheckConfirmed
	check.Channel = &channel
	return check
}
