package main

import (
	"math/rand"
	"net"
	"sync"
)

// World is the single source of truth for game shape: every player and
// every bait. It is guarded by one mutex; the tick loop holds it for
// the duration of a tick, and the receiver takes it only for the short
// operations that mutate input state or register a new player.
type World struct {
	mu      sync.Mutex
	Players *PlayerRegistry
	Baits   *BaitStore
}

// NewWorld returns an empty world.
func NewWorld() *World {
	return &World{
		Players: NewPlayerRegistry(),
		Baits:   NewBaitStore(),
	}
}

// Lock and Unlock expose the world-wide mutex directly; callers that
// need more than one logical operation (the tick loop, chiefly) hold
// the lock across all of them rather than re-acquiring per call.
func (w *World) Lock()   { w.mu.Lock() }
func (w *World) Unlock() { w.mu.Unlock() }

// Join registers a new player at addr with a freshly spawned snake and
// returns it. Used by the receiver on opcode 0. A repeated join from an
// address already holding a player refreshes that player's last-seen
// time and returns it instead of creating a second one, per the
// no-shared-address invariant (§8) — a duplicated or retried join
// datagram must not spawn a duplicate.
func (w *World) Join(addr *net.UDPAddr) *Player {
	w.mu.Lock()
	defer w.mu.Unlock()
	if id, ok := w.Players.FindIDByAddr(addr); ok {
		if p, ok := w.Players.Read(id); ok {
			w.Players.UpdateLastSeen(id)
			return p
		}
	}
	snake := NewSnake(SnakeInitialLength, rand.Intn(SnakeSkinColorRange), SnakeSpeed)
	return w.Players.Create("", snake, addr)
}

// FindIDByAddr is a locked convenience wrapper for the receive path,
// which needs only this one operation per datagram.
func (w *World) FindIDByAddr(addr *net.UDPAddr) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Players.FindIDByAddr(addr)
}

// UpdateXY is a locked convenience wrapper for the receive path.
func (w *World) UpdateXY(id string, x, y, windowW, windowH float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Players.UpdateXY(id, x, y, windowW, windowH)
}

// UpdateName is a locked convenience wrapper for the receive path.
func (w *World) UpdateName(id string, name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Players.UpdateName(id, name)
}

// UpdateAcceleration is a locked convenience wrapper for the receive path.
func (w *World) UpdateAcceleration(id string, accelerate bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Players.UpdateAcceleration(id, accelerate)
}

// UpdateLastSeen is a locked convenience wrapper around
// PlayerRegistry.UpdateLastSeen.
func (w *World) UpdateLastSeen(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Players.UpdateLastSeen(id)
}
