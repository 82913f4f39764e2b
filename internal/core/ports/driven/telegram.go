package driven

import (
	"context"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
)

// TelegramGateway opens connections to Telegram for one application.
type TelegramGateway interface {
	// Run connects, calls fn with a live session and disconnects when fn returns.
	// session is an existing session string to resume, or empty for a fresh login.
	Run(ctx context.Context, creds domain.Credentials, session string,
		fn func(ctx context.Context, s TelegramSession) error) error
}

// TelegramSession is a connected Telegram client.
// It is only valid inside the callback passed to TelegramGateway.Run.
type TelegramSession interface {
	// Authorize runs the interactive login unless the connection is already authorized.
	Authorize(ctx context.Context, prompter Prompter) (domain.Account, error)

	// Self returns the authorized account.
	Self(ctx context.Context) (domain.Account, error)

	// ExportSession serialises the current connection into a session string.
	ExportSession(ctx context.Context) (string, error)

	// ResolveChannel finds a channel the account is a member of.
	// Returns domain.ErrChannelNotFound if the account cannot see it.
	ResolveChannel(ctx context.Context, id int64) (domain.Channel, error)
}
