// Command tgsetup logs in to a Telegram user account and appends the
// resulting USER_SESSION_STRING to a .env file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/tgsetup/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tgsetup/internal/adapters/driven/telegram"
	"github.com/custodia-labs/tgsetup/internal/adapters/driving/cli"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driving"
	"github.com/custodia-labs/tgsetup/internal/core/services"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetServiceFactory(func(envPath string) driving.SetupService {
		gateway := telegram.NewGateway(
			telegram.WithLogger(telegram.NewProtocolLogger()),
			telegram.WithAppVersion(cli.Version()),
		)
		return services.NewSetupService(file.NewEnvStore(envPath), gateway)
	})

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
