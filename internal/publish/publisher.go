// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package publish sends prepared user stories to a socket.io endpoint.
package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/bddgrid/internal/ctxlog"
	"github.com/specialistvlad/bddgrid/internal/userstory"
	"github.com/zishang520/engine.io/v2/types"
)

// DefaultTimeout bounds the whole publish run when Timeout is zero.
const DefaultTimeout = 10 * time.Second

// Publisher emits one event per user story over a single connection. When
// AckEvent is set, every emit waits for that event before the next story is
// sent.
type Publisher struct {
	URL                string
	Namespace          string
	Event              string
	AckEvent           string
	Timeout            time.Duration
	InsecureSkipVerify bool
}

func (p *Publisher) namespace() string {
	if p.Namespace == "" {
		return "/"
	}
	return p.Namespace
}

// Publish sends stories in order. The connection is closed before it returns.
func (p *Publisher) Publish(ctx context.Context, stories []*userstory.UserStoryData) error {
	if p.URL == "" {
		return errors.New("publish: URL is required")
	}
	if p.Event == "" {
		return errors.New("publish: event name is required")
	}
	logger := ctxlog.FromContext(ctx).With("url", p.URL, "event", p.Event)

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	opCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	io, err := p.connect(opCtx)
	if err != nil {
		return err
	}
	defer func() {
		logger.Debug("Disconnecting socket client")
		io.Disconnect()
	}()

	acks := make(chan any, 1)
	if p.AckEvent != "" {
		io.On(types.EventName(p.AckEvent), func(data ...any) {
			var v any
			if len(data) > 0 {
				v = data[0]
			}
			select {
			case acks <- v:
			default:
			}
		})
	}

	for _, story := range stories {
		payload, err := Payload(story)
		if err != nil {
			return err
		}
		logger.Info("Emitting user story", "story", story.Name)
		io.Emit(p.Event, payload)

		if p.AckEvent == "" {
			continue
		}
		select {
		case <-opCtx.Done():
			return fmt.Errorf("timed out after %v waiting for event '%s' for %s", timeout, p.AckEvent, story.Name)
		case v := <-acks:
			logger.Debug("Acknowledged.", "story", story.Name, "ack", v)
		}
	}

	logger.Info("User stories published.", "count", len(stories))
	return nil
}

// Payload converts a story into the JSON object sent on the wire.
func Payload(story *userstory.UserStoryData) (map[string]any, error) {
	raw, err := json.Marshal(story)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", story.Name, err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", story.Name, err)
	}
	return out, nil
}
