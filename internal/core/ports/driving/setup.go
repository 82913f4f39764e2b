package driving

import (
	"context"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
)

// SetupService performs the one-time session setup.
type SetupService interface {
	// LoadSetup reads and validates the env file.
	LoadSetup(ctx context.Context) (*domain.Setup, error)

	// Run logs in, saves USER_SESSION_STRING and checks the backup channel.
	Run(ctx context.Context, setup *domain.Setup, prompter driven.Prompter) (*domain.Report, error)

	// Check connects with the stored session and reports the account without writing anything.
	Check(ctx context.Context, setup *domain.Setup) (*domain.Report, error)
}
