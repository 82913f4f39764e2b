package domain

import "errors"

// Domain errors represent setup failures the CLI explains to the user.
// These are distinct from transport errors returned by the Telegram client.
var (
	// ErrEnvNotFound indicates the .env file does not exist.
	ErrEnvNotFound = errors.New(".env file not found")

	// ErrMissingCredentials indicates TELEGRAM_API_ID or TELEGRAM_API_HASH is absent or not numeric.
	ErrMissingCredentials = errors.New("missing TELEGRAM_API_ID or TELEGRAM_API_HASH")

	// ErrInvalidCredentials indicates the API ID or hash is present but unusable.
	ErrInvalidCredentials = errors.New("invalid TELEGRAM_API_ID or TELEGRAM_API_HASH")

	// ErrInvalidInput indicates an empty or malformed interactive answer.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChannelID indicates BACKUP_CHANNEL_ID is not a channel identifier.
	ErrInvalidChannelID = errors.New("invalid BACKUP_CHANNEL_ID")

	// Authentication Errors.

	// ErrNotAuthorized indicates the login flow finished without an authorized session.
	ErrNotAuthorized = errors.New("authentication failed")

	// ErrAccountNotRegistered indicates the phone number has no Telegram account.
	// Signing up new accounts is not supported.
	ErrAccountNotRegistered = errors.New("phone number is not registered with Telegram")

	// ErrNoSession indicates USER_SESSION_STRING is not present in the env file.
	ErrNoSession = errors.New("no USER_SESSION_STRING in env file")

	// Channel Errors.

	// ErrChannelNotFound indicates the account has no dialog with the backup channel.
	ErrChannelNotFound = errors.New("channel not found in account dialogs")
)
