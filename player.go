package main

import (
	"net"
	"time"

	"github.com/google/uuid"
)

// Player is one connected client: its identity, its owned snake, and the
// steering input most recently received from it.
type Player struct {
	ID       string
	Name     string
	Score    int
	Snake    *Snake
	Addr     *net.UDPAddr
	MoveX    float64
	MoveY    float64
	WindowW  float64
	WindowH  float64
	LastSeen time.Time
}

// PlayerRegistry is a sparse collection of players keyed by a uuid id
// that is never reused or shifted by another player's removal, so a
// stale id from a previous tick can never alias a different player.
type PlayerRegistry struct {
	players map[string]*Player
}

// NewPlayerRegistry returns an empty registry.
func NewPlayerRegistry() *PlayerRegistry {
	return &PlayerRegistry{players: make(map[string]*Player)}
}

// Create registers a new player around the given snake and remote
// address, and returns the player.
func (r *PlayerRegistry) Create(name string, snake *Snake, addr *net.UDPAddr) *Player {
	p := &Player{
		ID:       uuid.NewString(),
		Name:     name,
		Snake:    snake,
		Addr:     addr,
		LastSeen: time.Now(),
	}
	r.players[p.ID] = p
	return p
}

// Destroy removes a player by id. No-op if unknown.
func (r *PlayerRegistry) Destroy(id string) {
	delete(r.players, id)
}

// Read returns the player for id, or false if it does not exist.
func (r *PlayerRegistry) Read(id string) (*Player, bool) {
	p, ok := r.players[id]
	return p, ok
}

// Keys returns all current player ids, order unspecified.
func (r *PlayerRegistry) Keys() []string {
	keys := make([]string, 0, len(r.players))
	for id := range r.players {
		keys = append(keys, id)
	}
	return keys
}

// Length returns the number of registered players.
func (r *PlayerRegistry) Length() int {
	return len(r.players)
}

// UpdateXY records the latest steering target and viewport size reported
// by the player, and refreshes its last-seen time.
func (r *PlayerRegistry) UpdateXY(id string, x, y, windowW, windowH float64) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.MoveX = x
	p.MoveY = y
	p.WindowW = windowW
	p.WindowH = windowH
	p.LastSeen = time.Now()
}

// UpdateName renames a player and refreshes its last-seen time.
func (r *PlayerRegistry) UpdateName(id string, name string) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Name = name
	p.LastSeen = time.Now()
}

// UpdateAcceleration sets the player's snake acceleration flag and
// refreshes its last-seen time.
func (r *PlayerRegistry) UpdateAcceleration(id string, accelerate bool) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Snake.Accelerate = accelerate
	p.LastSeen = time.Now()
}

// UpdateSnake replaces a player's snake outright.
func (r *PlayerRegistry) UpdateSnake(id string, snake *Snake) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Snake = snake
}

// GrowPlayerSnake grows the owned snake by one node (capped, see Snake.Grow).
func (r *PlayerRegistry) GrowPlayerSnake(id string) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.Snake.Grow()
}

// FindIDByAddr looks up the player id owning a remote address, used by
// the receive path to demultiplex inbound datagrams without requiring
// the client to echo its own id back.
func (r *PlayerRegistry) FindIDByAddr(addr *net.UDPAddr) (string, bool) {
	for id, p := range r.players {
		if addrEqual(p.Addr, addr) {
			return id, true
		}
	}
	return "", false
}

func addrEqual(a, b *net.UDPAddr) bool {
	return a.IP.Equal(b.IP) && a.Port == b.Port
}

// UpdateLastSeen refreshes the last-seen time without touching any
// other field, used when a command with no positional data still
// proves the client is alive.
func (r *PlayerRegistry) UpdateLastSeen(id string) {
	p, ok := r.players[id]
	if !ok {
		return
	}
	p.LastSeen = time.Now()
}

// CleanInactivePlayers removes and returns the ids of every player whose
// last-seen time exceeds timeout. The players are already gone from the
// registry when it returns, so the caller has only their ids.
func (r *PlayerRegistry) CleanInactivePlayers(timeout time.Duration) []string {
	now := time.Now()
	var inactive []string
	for id, p := range r.players {
		if now.Sub(p.LastSeen) > timeout {
			inactive = append(inactive, id)
		}
	}
	for _, id := range inactive {
		delete(r.players, id)
	}
	return inactive
}
