package driven

import "context"

// Prompter collects login secrets from the user.
type Prompter interface {
	// Phone returns the account phone number in international format.
	Phone(ctx context.Context) (string, error)

	// Code returns the login code Telegram sent to the user.
	// delivery describes where the code was sent, e.g. "Telegram app" or "SMS".
	Code(ctx context.Context, delivery string) (string, error)

	// Password returns the two-step verification password.
	Password(ctx context.Context) (string, error)
}
