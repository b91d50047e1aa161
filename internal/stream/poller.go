package stream

import (
	"context"
	"time"

	"skillswap/internal/models"
	"skillswap/pkg/logger"
)

// FetchFunc loads the current conversation snapshot between two members.
type FetchFunc func(ctx context.Context, selfID, peerID string) ([]models.ChatMessage, error)

// ConversationPoller refetches a two-party conversation on a fixed
// interval and replaces the snapshot wholesale each cycle. A kick
// forces an immediate refetch ahead of the next tick, which is how a
// just-sent message shows up without waiting out the interval.
type ConversationPoller struct {
	selfID   string
	peerID   string
	interval time.Duration
	fetch    FetchFunc
	kick     chan struct{}
}

func NewConversationPoller(selfID, peerID string, interval time.Duration, fetch FetchFunc) *ConversationPoller {
	return &ConversationPoller{
		selfID:   selfID,
		peerID:   peerID,
		interval: interval,
		fetch:    fetch,
		kick:     make(chan struct{}, 1),
	}
}

// Kick requests an immediate refetch. Safe to call from any goroutine;
// a kick while one is already pending is a no-op.
func (p *ConversationPoller) Kick() {
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// Run polls until the context is cancelled, invoking onSnapshot with
// each successfully fetched snapshot. The first fetch happens
// immediately. A failed fetch is logged and skipped; the consumer
// keeps whatever snapshot it last received.
func (p *ConversationPoller) Run(ctx context.Context, onSnapshot func([]models.ChatMessage)) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.poll(ctx, onSnapshot)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx, onSnapshot)
		case <-p.kick:
			p.poll(ctx, onSnapshot)
		}
	}
}

func (p *ConversationPoller) poll(ctx context.Context, onSnapshot func([]models.ChatMessage)) {
	messages, err := p.fetch(ctx, p.selfID, p.peerID)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.LogError(err, "Conversation poll failed", map[string]interface{}{
			"member_id": p.selfID,
			"peer_id":   p.peerID,
		})
		return
	}

	onSnapshot(messages)
}
