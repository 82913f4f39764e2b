package domain

// ChannelCheckStatus describes the outcome of the backup channel check.
type ChannelCheckStatus string

// Channel check outcomes.
const (
	ChannelCheckSkipped   ChannelCheckStatus = "skipped"
	ChannelCheckConfirmed ChannelCheckStatus = "confirmed"
	ChannelCheckFailed    ChannelCheckStatus = "failed"
)

// ChannelCheck is the result of resolving the backup channel.
type ChannelCheck struct {
	Status ChannelCheckStatus

	// Raw is the configured BACKUP_CHANNEL_ID.
	Raw string

	// Channel is set when Status is ChannelCheckConfirmed.
	Channel *Channel

	// Err is set when Status is ChannelCheckFailed.
	Err error
}

// Report summarises one setup or check run.
type Report struct {
	Account Account

	// Session is the exported session string.
	Session string

	// Saved is true when the session was appended to the env file.
	Saved bool

	// EnvPath is the env file that was read and, if Saved, written.
	EnvPath string

	ChannelCheck ChannelCheck
}
