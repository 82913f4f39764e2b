package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
	"github.com/custodia-labs/tgsetup/internal/logger"
)

// Ensure Gateway implements the interface.
var _ driven.TelegramGateway = (*Gateway)(nil)

const (
	// DefaultDialogPageSize is how many dialogs are requested per page.
	DefaultDialogPageSize = 100

	// DefaultMaxDialogPages bounds the backup channel scan.
	DefaultMaxDialogPages = 50

	// DefaultDialogInterval spaces dialog requests to stay clear of FLOOD_WAIT.
	DefaultDialogInterval = 500 * time.Millisecond
)

// Gateway opens gotd client connections.
type Gateway struct {
	log            *zap.Logger
	device         telegram.DeviceConfig
	dialogPageSize int
	maxDialogPages int
	dialogInterval time.Duration
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithLogger sets the zap logger handed to the MTProto client.
func WithLogger(l *zap.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.log = l
		}
	}
}

// WithAppVersion sets the app version reported to Telegram in the device info.
func WithAppVersion(v string) Option {
	return func(g *Gateway) {
		g.device.AppVersion = v
	}
}

// WithDialogScan overrides the paging of the backup channel scan.
func WithDialogScan(pageSize, maxPages int, interval time.Duration) Option {
	return func(g *Gateway) {
		if pageSize > 0 {
			g.dialogPageSize = pageSize
		}
		if maxPages > 0 {
			g.maxDialogPages = maxPages
		}
		if interval >= 0 {
			g.dialogInterval = interval
		}
	}
}

// NewGateway creates a gateway.
func NewGateway(opts ...Option) *Gateway {
	g := &Gateway{
		log: zap.NewNop(),
		device: telegram.DeviceConfig{
			DeviceModel:   "tgsetup",
			SystemVersion: "cli",
			AppVersion:    "dev",
		},
		dialogPageSize: DefaultDialogPageSize,
		maxDialogPages: DefaultMaxDialogPages,
		dialogInterval: DefaultDialogInterval,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run connects to Telegram, runs fn and disconnects.
// A non-empty sessionString resumes that session instead of starting fresh.
func (g *Gateway) Run(
	ctx context.Context, creds domain.Credentials, sessionString string,
	fn func(ctx context.Context, s driven.TelegramSession) error,
) error {
	storage := new(session.StorageMemory)
	if sessionString != "" {
		if err := importSession(ctx, storage, sessionString); err != nil {
			return fmt.Errorf("load %s: %w", domain.KeySessionString, err)
		}
	}

	client := telegram.NewClient(creds.AppID, creds.AppHash, telegram.Options{
		SessionStorage: storage,
		Logger:         g.log,
		Device:         g.device,
		NoUpdates:      true,
	})

	logger.Debug("connecting to Telegram as app %d", creds.AppID)
	return client.Run(ctx, func(ctx context.Context) error {
		logger.Debug("connected")
		return fn(ctx, &liveSession{
			client:  client,
			storage: storage,
			scan: dialogScan{
				pageSize: g.dialogPageSize,
				maxPages: g.maxDialogPages,
				limiter:  rate.NewLimiter(rate.Every(g.dialogInterval), 1),
			},
		})
	})
}

// NewProtocolLogger returns a zap logger for MTProto internals that writes
// through the verbose logger, or a no-op logger when verbose mode is off.
func NewProtocolLogger() *zap.Logger {
	if !logger.IsVerbose() {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(logger.Writer()),
		zapcore.InfoLevel,
	)
	return zap.New(core).Named("mtproto")
}
