package domain

import (
	"strconv"
	"strings"
)

// Keys read from and written to the .env file.
//
//nolint:gosec // G101: These are env key names, not actual credentials.
const (
	KeyAPIID         = "TELEGRAM_API_ID"
	KeyAPIHash       = "TELEGRAM_API_HASH"
	KeyBackupChannel = "BACKUP_CHANNEL_ID"
	KeySessionString = "USER_SESSION_STRING"
)

const maskedHashVisible = 8

// Credentials identify the Telegram application the session is issued for.
type Credentials struct {
	// AppID is the numeric api_id from my.telegram.org.
	AppID int

	// AppHash is the api_hash paired with AppID.
	AppHash string
}

// MaskedHash returns the first characters of the app hash followed by an ellipsis.
func (c Credentials) MaskedHash() string {
	if len(c.AppHash) <= maskedHashVisible {
		return c.AppHash + "..."
	}
	return c.AppHash[:maskedHashVisible] + "..."
}

// Setup is everything loaded from the env file before authentication starts.
type Setup struct {
	Credentials Credentials

	// BackupChannel is the raw BACKUP_CHANNEL_ID value. Empty when not configured.
	BackupChannel string

	// ExistingSession is the USER_SESSION_STRING already present in the file, if any.
	ExistingSession string

	// EnvPath is the file the values were read from.
	EnvPath string
}

// HasBackupChannel reports whether a backup channel check should run.
func (s *Setup) HasBackupChannel() bool {
	return strings.TrimSpace(s.BackupChannel) != ""
}

// ParseCredentials validates the API ID and hash found in env.
func ParseCredentials(env map[string]string) (Credentials, error) {
	rawID, ok := env[KeyAPIID]
	if !ok {
		return Credentials{}, ErrMissingCredentials
	}

	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		return Credentials{}, ErrMissingCredentials
	}

	hash := strings.TrimSpace(env[KeyAPIHash])
	if id <= 0 || hash == "" {
		return Credentials{}, ErrInvalidCredentials
	}

	return Credentials{AppID: id, AppHash: hash}, nil
}

// channelIDPrefix is the Bot API marker for supergroups and channels.
const channelIDPrefix = "-100"

// ParseChannelID converts a BACKUP_CHANNEL_ID value to a bare MTProto channel ID.
// Both Bot API ("-1001234567890") and bare ("1234567890") forms are accepted.
func ParseChannelID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrInvalidChannelID
	}

	digits := raw
	if strings.HasPrefix(raw, channelIDPrefix) {
		digits = strings.TrimPrefix(raw, channelIDPrefix)
	}

	id, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidChannelID
	}
	return id, nil
}
