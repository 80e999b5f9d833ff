// internal/room/room.go

// Package room wraps one game session in an actor: a single goroutine
// draining a command channel, so everything that touches a session
// (player commands, timer ticks, bot moves) is applied in arrival
// order with no interleaving.
package room

import (
	"context"
	"sync"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/pjcolombo/onecard/internal/game"
	"github.com/pjcolombo/onecard/internal/models"
)

// commandBuffer bounds the per-room mailbox. A full mailbox drops the
// command rather than blocking a timer callback.
const commandBuffer = 256

// Room owns one Game and serializes all access to it.
type Room struct {
	ID   uuid.UUID
	Game *game.Game

	cmds   chan models.Command
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	closed sync.Once

	log *logrus.Entry
}

// New creates a room, wires the game's timer callbacks into the
// room's mailbox, and starts the actor loop.
func New(ctx context.Context, clock quartz.Clock, logger *logrus.Logger) *Room {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	g := game.NewGame(clock, logger)
	r := &Room{
		ID:   g.ID,
		Game: g,
		cmds: make(chan models.Command, commandBuffer),
		done: make(chan struct{}),
		log:  logger.WithField("room", g.ID),
	}
	r.ctx, r.cancel = context.WithCancel(ctx)
	g.Enqueue = r.Enqueue
	go r.run()
	return r
}

// Enqueue submits a command to the room's mailbox. It never blocks:
// after Close, or with a full mailbox, the command is dropped and
// logged.
func (r *Room) Enqueue(cmd models.Command) {
	select {
	case <-r.ctx.Done():
		r.log.WithField("command", cmd.Type).Debug("room closed, dropping command")
	case r.cmds <- cmd:
	default:
		r.log.WithField("command", cmd.Type).Warn("mailbox full, dropping command")
	}
}

func (r *Room) run() {
	defer close(r.done)
	for {
		select {
		case <-r.ctx.Done():
			r.Game.StopTimers()
			return
		case cmd := <-r.cmds:
			r.Game.Dispatch(cmd)
		}
	}
}

// Close stops the actor and cancels every outstanding timer. It is
// idempotent and returns after the loop has exited.
func (r *Room) Close() {
	r.closed.Do(r.cancel)
	<-r.done
}
