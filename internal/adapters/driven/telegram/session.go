package telegram

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"github.com/gotd/td/tg"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/core/ports/driven"
	"github.com/custodia-labs/tgsetup/internal/logger"
	"github.com/custodia-labs/tgsetup/internal/sessionstring"
)

// liveSession implements driven.TelegramSession for one connected client.
type liveSession struct {
	client  *telegram.Client
	storage session.Storage
	scan    dialogScan
}

// Ensure liveSession implements the interface.
var _ driven.TelegramSession = (*liveSession)(nil)

func (s *liveSession) Authorize(ctx context.Context, prompter driven.Prompter) (domain.Account, error) {
	if err := authorize(ctx, s.client.Auth(), prompter); err != nil {
		return domain.Account{}, err
	}
	return s.Self(ctx)
}

func (s *liveSession) Self(ctx context.Context) (domain.Account, error) {
	user, err := s.client.Self(ctx)
	if err != nil {
		return domain.Account{}, fmt.Errorf("get self: %w", err)
	}
	return toAccount(user), nil
}

func (s *liveSession) ExportSession(ctx context.Context) (string, error) {
	return exportSession(ctx, s.storage)
}

func (s *liveSession) ResolveChannel(ctx context.Context, id int64) (domain.Channel, error) {
	return s.scan.find(ctx, s.client.API(), id)
}

// exportSession encodes the session held by storage as a string session.
func exportSession(ctx context.Context, storage session.Storage) (string, error) {
	loader := session.Loader{Storage: storage}
	data, err := loader.Load(ctx)
	if err != nil {
		return "", err
	}

	addr := data.Addr
	if addr == "" {
		addr, err = dcAddress(data.DC, data.Config.DCOptions, dcs.Prod().Options)
		if err != nil {
			return "", err
		}
	}
	logger.Debug("exporting session for DC %d at %s", data.DC, addr)

	return sessionstring.Encode(sessionstring.Session{
		DC:      data.DC,
		Addr:    addr,
		AuthKey: data.AuthKey,
	})
}

// importSession seeds storage with a decoded string session.
func importSession(ctx context.Context, storage session.Storage, str string) error {
	s, err := sessionstring.Decode(str)
	if err != nil {
		return err
	}

	loader := session.Loader{Storage: storage}
	return loader.Save(ctx, &session.Data{
		DC:        s.DC,
		Addr:      s.Addr,
		AuthKey:   s.AuthKey,
		AuthKeyID: s.AuthKeyID(),
	})
}

// dcAddress picks a plain IPv4 endpoint for dc, preferring the options
// received from the server over the built-in production list.
func dcAddress(dc int, lists ...[]tg.DCOption) (string, error) {
	for _, options := range lists {
		for _, opt := range options {
			if opt.ID != dc || opt.Ipv6 || opt.MediaOnly || opt.CDN || opt.TCPObfuscatedOnly {
				continue
			}
			return net.JoinHostPort(opt.IPAddress, strconv.Itoa(opt.Port)), nil
		}
	}
	return "", fmt.Errorf("no address known for DC %d", dc)
}

func toAccount(u *tg.User) domain.Account {
	if u == nil {
		return domain.Account{}
	}
	return domain.Account{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Phone:     u.Phone,
		Premium:   u.Premium,
	}
}
