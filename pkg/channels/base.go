// Package channels contains the chat platform adapters. An adapter owns
// its platform session, turns platform events into bus events for the
// relay engine, and delivers the engine's translated output back to the
// platform.
package channels

import (
	"context"
	"sync/atomic"

	"github.com/sahiljaat11/discord-translator-bot/pkg/bus"
)

type Channel interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	IsRunning() bool
}

type BaseChannel struct {
	events  *bus.EventBus
	running atomic.Bool
	name    string
}

func NewBaseChannel(name string, events *bus.EventBus) *BaseChannel {
	return &BaseChannel{
		events: events,
		name:   name,
	}
}

func (c *BaseChannel) Name() string {
	return c.name
}

func (c *BaseChannel) IsRunning() bool {
	return c.running.Load()
}

func (c *BaseChannel) SetRunning(running bool) {
	c.running.Store(running)
}
