package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/tg"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
	"github.com/custodia-labs/tgsetup/internal/logger"
)

// Ensure promptAuthenticator implements the interface.
var _ auth.UserAuthenticator = promptAuthenticator{}

// promptAuthenticator answers the gotd login flow through a driven.Prompter.
type promptAuthenticator struct {
	prompter driven.Prompter
}

func (a promptAuthenticator) Phone(ctx context.Context) (string, error) {
	phone, err := a.prompter.Phone(ctx)
	if err != nil {
		return "", err
	}
	return normalizePhone(phone), nil
}

func (a promptAuthenticator) Password(ctx context.Context) (string, error) {
	return a.prompter.Password(ctx)
}

func (a promptAuthenticator) Code(ctx context.Context, sentCode *tg.AuthSentCode) (string, error) {
	code, err := a.prompter.Code(ctx, codeDelivery(sentCode))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}

func (a promptAuthenticator) AcceptTermsOfService(_ context.Context, tos tg.HelpTermsOfService) error {
	logger.Info("accepting terms of service %s", tos.ID.Data)
	return nil
}

func (a promptAuthenticator) SignUp(_ context.Context) (auth.UserInfo, error) {
	return auth.UserInfo{}, domain.ErrAccountNotRegistered
}

// authorize runs the login flow unless the session is already authorized.
func authorize(ctx context.Context, client *auth.Client, prompter driven.Prompter) error {
	flow := auth.NewFlow(promptAuthenticator{prompter: prompter}, auth.SendCodeOptions{})
	if err := client.IfNecessary(ctx, flow); err != nil {
		return fmt.Errorf("auth flow: %w", err)
	}

	status, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("auth status: %w", err)
	}
	if !status.Authorized {
		return domain.ErrNotAuthorized
	}
	return nil
}

// normalizePhone strips formatting characters, keeping a leading '+'.
func normalizePhone(phone string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// codeDelivery describes where Telegram sent the login code.
func codeDelivery(sentCode *tg.AuthSentCode) string {
	if sentCode == nil {
		return "Telegram"
	}
	switch sentCode.Type.(type) {
	case *tg.AuthSentCodeTypeApp:
		return "Telegram app"
	case *tg.AuthSentCodeTypeSMS:
		return "SMS"
	case *tg.AuthSentCodeTypeCall:
		return "phone call"
	case *tg.AuthSentCodeTypeFlashCall:
		return "flash call"
	case *tg.AuthSentCodeTypeEmailCode:
		return "email"
	default:
		return "Telegram"
	}
}
