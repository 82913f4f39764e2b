package telegram

import (
	"context"
	"fmt"

	"github.com/gotd/td/tg"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/tgsetup/internal/core/domain"
	"github.com/custodia-labs/tgsetup/internal/logger"
)

// dialogScan finds a channel by paging through the account's dialogs.
// A fresh session has no access hashes cached, so the dialog list is the
// only way to reach a channel by bare ID.
type dialogScan struct {
	pageSize int
	maxPages int
	limiter  *rate.Limiter
}

// dialogsAPI is the part of tg.Client the scan needs.
type dialogsAPI interface {
	MessagesGetDialogs(ctx context.Context, request *tg.MessagesGetDialogsRequest) (tg.MessagesDialogsClass, error)
}

type dialogsPage struct {
	dialogs  []tg.DialogClass
	messages []tg.MessageClass
	chats    []tg.ChatClass
	users    []tg.UserClass
	complete bool
}

func (s dialogScan) find(ctx context.Context, api dialogsAPI, id int64) (domain.Channel, error) {
	req := &tg.MessagesGetDialogsRequest{
		OffsetPeer: &tg.InputPeerEmpty{},
		Limit:      s.pageSize,
	}

	for page := 1; page <= s.maxPages; page++ {
		if s.limiter != nil {
			if err := s.limiter.Wait(ctx); err != nil {
				return domain.Channel{}, err
			}
		}

		resp, err := api.MessagesGetDialogs(ctx, req)
		if err != nil {
			return domain.Channel{}, fmt.Errorf("get dialogs: %w", err)
		}
		p := pageOf(resp)
		logger.Debug("dialog page %d: %d dialogs, %d chats", page, len(p.dialogs), len(p.chats))

		channel, found, err := findChannel(p.chats, id)
		if err != nil {
			return domain.Channel{}, err
		}
		if found {
			return channel, nil
		}

		if p.complete || len(p.dialogs) < s.pageSize {
			break
		}
		if !p.advance(req) {
			break
		}
	}

	return domain.Channel{}, domain.ErrChannelNotFound
}

func pageOf(resp tg.MessagesDialogsClass) dialogsPage {
	switch r := resp.(type) {
	case *tg.MessagesDialogs:
		return dialogsPage{dialogs: r.Dialogs, messages: r.Messages, chats: r.Chats, users: r.Users, complete: true}
	case *tg.MessagesDialogsSlice:
		return dialogsPage{dialogs: r.Dialogs, messages: r.Messages, chats: r.Chats, users: r.Users}
	default:
		return dialogsPage{complete: true}
	}
}

// findChannel looks for a channel or supergroup with the given bare ID.
// A channel the account was banned from is reported as an error.
func findChannel(chats []tg.ChatClass, id int64) (domain.Channel, bool, error) {
	for _, chat := range chats {
		switch c := chat.(type) {
		case *tg.Channel:
			if c.ID == id {
				return domain.Channel{ID: c.ID, Title: c.Title}, true, nil
			}
		case *tg.ChannelForbidden:
			if c.ID == id {
				return domain.Channel{}, false,
					fmt.Errorf("%w: access to %q is forbidden", domain.ErrChannelNotFound, c.Title)
			}
		}
	}
	return domain.Channel{}, false, nil
}

// advance moves req past the last dialog of the page.
// Returns false when no offset can be derived.
func (p dialogsPage) advance(req *tg.MessagesGetDialogsRequest) bool {
	if len(p.dialogs) == 0 {
		return false
	}
	last, ok := p.dialogs[len(p.dialogs)-1].(*tg.Dialog)
	if !ok {
		return false
	}

	peer, ok := p.inputPeer(last.Peer)
	if !ok {
		return false
	}

	date := 0
	for _, msg := range p.messages {
		m, ok := msg.(interface {
			GetID() int
			GetDate() int
			GetPeerID() tg.PeerClass
		})
		if ok && m.GetID() == last.TopMessage && samePeer(m.GetPeerID(), last.Peer) {
			date = m.GetDate()
			break
		}
	}

	req.OffsetPeer = peer
	req.OffsetID = last.TopMessage
	req.OffsetDate = date
	return true
}

func (p dialogsPage) inputPeer(peer tg.PeerClass) (tg.InputPeerClass, bool) {
	switch pr := peer.(type) {
	case *tg.PeerUser:
		for _, u := range p.users {
			if user, ok := u.(*tg.User); ok && user.ID == pr.UserID {
				return &tg.InputPeerUser{UserID: user.ID, AccessHash: user.AccessHash}, true
			}
		}
	case *tg.PeerChat:
		return &tg.InputPeerChat{ChatID: pr.ChatID}, true
	case *tg.PeerChannel:
		for _, c := range p.chats {
			if ch, ok := c.(*tg.Channel); ok && ch.ID == pr.ChannelID {
				return &tg.InputPeerChannel{ChannelID: ch.ID, AccessHash: ch.AccessHash}, true
			}
		}
	}
	return nil, false
}

func samePeer(a, b tg.PeerClass) bool {
	switch pa := a.(type) {
	case *tg.PeerUser:
		pb, ok := b.(*tg.PeerUser)
		return ok && pa.UserID == pb.UserID
	case *tg.PeerChat:
		pb, ok := b.(*tg.PeerChat)
		return ok && pa.ChatID == pb.ChatID
	case *tg.PeerChannel:
		pb, ok := b.(*tg.PeerChannel)
		return ok && pa.ChannelID == pb.ChannelID
	}
	return false
}
