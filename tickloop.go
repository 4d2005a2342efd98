package main

import (
	"strings"
	"time"
)

// TickLoop is the fixed-period scheduler that owns world-shape mutation
// after join. Only this loop moves, grows, or shortens snakes, creates
// or destroys baits, and destroys players; the receiver registers new
// players on join and otherwise touches only a player's input fields.
type TickLoop struct {
	world *World
	queue *OutboundQueue
}

// NewTickLoop returns a tick loop driving world over queue.
func NewTickLoop(world *World, queue *OutboundQueue) *TickLoop {
	return &TickLoop{world: world, queue: queue}
}

// Run drives one tick every GameLoopDelayMS until done is closed. The
// current tick always finishes before Run returns.
func (tl *TickLoop) Run(done <-chan struct{}) {
	ticker := time.NewTicker(GameLoopDelayMS * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			tl.tick()
		}
	}
}

// tick runs the full per-tick algorithm under the world lock, held for
// its entire duration so no other task observes a half-mutated world.
func (tl *TickLoop) tick() {
	tl.world.Lock()
	defer tl.world.Unlock()

	ids := tl.world.Players.Keys()
	var newBaitFrames []string

	// 1. Bait replenishment.
	if tl.world.Baits.Length() < MaxBaits {
		x := randRange(OffsetX+10, TrueMapWidth-10)
		y := randRange(OffsetY+10, TrueMapHeight-10)
		size := randomBaitSize()
		tl.world.Baits.Create(x, y, randomBaitColor(), size)
		newBaitFrames = append(newBaitFrames, EncodeBaitNew(x, y, size))
	}

	// 2. Input integration: accelerate/auto-shorten, then step.
	for _, id := range ids {
		p, ok := tl.world.Players.Read(id)
		if !ok || p.Snake.IsDead {
			continue
		}
		s := p.Snake
		if s.Accelerate && len(s.Nodes) > SnakeInitialLength {
			s.AccelerateTime++
			if s.AccelerateTime >= SnakeItIsTimeToShorter {
				s.AccelerateTime = 0
				tail := s.Nodes[len(s.Nodes)-1]
				s.Shorter()
				tl.world.Baits.Create(tail.X, tail.Y, randomBaitColor(), SnakeAccelerateDropSize)
				newBaitFrames = append(newBaitFrames, EncodeBaitNew(tail.X, tail.Y, SnakeAccelerateDropSize))
			}
		}
		s.Step(p.MoveX, p.MoveY, p.WindowW, p.WindowH)
	}

	// 3. Player-vs-player collisions, evaluated over the tick-start
	// snapshot so a player destroyed mid-tick is never re-observed.
	deadSet := make(map[string]bool, len(ids))
	var deadIDs []string
	for _, victimID := range ids {
		victim, ok := tl.world.Players.Read(victimID)
		if !ok || victim.Snake.IsDead || deadSet[victimID] {
			continue
		}
		headRect := rectAround(victim.Snake.Head().X, victim.Snake.Head().Y, SnakeInitialSize/3)
		for _, attackerID := range ids {
			if attackerID == victimID {
				continue
			}
			attacker, ok := tl.world.Players.Read(attackerID)
			if !ok {
				continue
			}
			hit := false
			for _, n := range attacker.Snake.Nodes {
				if intersect(headRect, rectAround(n.X, n.Y, SnakeInitialSize/3)) {
					hit = true
					break
				}
			}
			if hit {
				victim.Snake.IsDead = true
				deadSet[victimID] = true
				deadIDs = append(deadIDs, victimID)
				break
			}
		}
	}

	for _, deadID := range deadIDs {
		p, ok := tl.world.Players.Read(deadID)
		if !ok {
			continue
		}
		color := randomBaitColor()
		for i := 0; i < len(p.Snake.Nodes); i += 2 {
			n := p.Snake.Nodes[i]
			jx := n.X + randRange(-5, 5)
			jy := n.Y + randRange(-5, 5)
			tl.world.Baits.Create(jx, jy, color, MaxBaitsSizeOnDead)
			newBaitFrames = append(newBaitFrames, EncodeBaitNew(jx, jy, MaxBaitsSizeOnDead))
		}
		tl.queue.Push(p.Addr, EncodeYouDied())
		tl.world.Players.Destroy(deadID)
	}

	// 4. Death broadcast: one concatenated frame to every player still alive.
	if len(deadIDs) > 0 {
		var b strings.Builder
		for _, deadID := range deadIDs {
			b.WriteString(EncodeDied(deadID))
		}
		tl.broadcastToSurvivors(ids, deadSet, b.String())
	}

	// 5. Bait replenishment broadcast: spawner + death-scatter, concatenated.
	if len(newBaitFrames) > 0 {
		tl.broadcastToSurvivors(ids, deadSet, strings.Join(newBaitFrames, ""))
	}

	// 6. Head-vs-bait consumption.
	var consumedFrames []string
	grownIDs := make(map[string]bool)
	for _, id := range ids {
		if deadSet[id] {
			continue
		}
		p, ok := tl.world.Players.Read(id)
		if !ok {
			continue
		}
		head := p.Snake.Head()
		headRect := rectAround(head.X, head.Y, SnakeInitialSize/2)
		for _, baitID := range tl.world.Baits.Keys() {
			bait, ok := tl.world.Baits.Read(baitID)
			if !ok {
				continue
			}
			if !intersect(headRect, rectAround(bait.X, bait.Y, bait.Size/2)) {
				continue
			}
			tl.world.Baits.Destroy(baitID)
			p.Snake.Grow()
			consumedFrames = append(consumedFrames, EncodeBaitConsumed(bait.X, bait.Y))
			grownIDs[id] = true
			if SendSelfMethod == SendSelfMethodHead {
				tl.queue.Push(p.Addr, EncodeSelfGrown())
			}
		}
	}
	if len(consumedFrames) > 0 {
		tl.broadcastToSurvivors(ids, deadSet, strings.Join(consumedFrames, ""))
	}
	if len(grownIDs) > 0 {
		var b strings.Builder
		for gid := range grownIDs {
			b.WriteString(EncodeEnemyGrew(gid))
		}
		tl.broadcastToSurvivors(ids, deadSet, b.String())
	}

	// 7. Per-player self-update.
	for _, id := range ids {
		if deadSet[id] {
			continue
		}
		p, ok := tl.world.Players.Read(id)
		if !ok {
			continue
		}
		if SendSelfMethod == SendSelfMethodHead {
			tl.queue.Push(p.Addr, EncodeSelfHead(p.Snake.Head()))
		} else {
			tl.queue.Push(p.Addr, EncodeSelfFull(p.Snake.Nodes))
		}
	}

	// 8. Per-player enemy update.
	for _, id := range ids {
		if deadSet[id] {
			continue
		}
		p, ok := tl.world.Players.Read(id)
		if !ok {
			continue
		}
		var b strings.Builder
		for _, otherID := range ids {
			if otherID == id || deadSet[otherID] {
				continue
			}
			other, ok := tl.world.Players.Read(otherID)
			if !ok {
				continue
			}
			if UpdateEnemyMethod == UpdateEnemyMethodHead {
				b.WriteString(EncodeEnemyHead(otherID, other.Snake.Head()))
			} else {
				b.WriteString(EncodeEnemyFull(otherID, other.Snake.Nodes))
			}
		}
		if b.Len() > 0 {
			tl.queue.Push(p.Addr, b.String())
		}
	}

	// 9. Inactivity sweep: broadcast to everyone alive at tick start
	// except the prunee, per the pre-sweep snapshot.
	removed := tl.world.Players.CleanInactivePlayers(time.Duration(PlayerInactivityTimeoutSec) * time.Second)
	if len(removed) > 0 {
		removedSet := make(map[string]bool, len(removed))
		var b strings.Builder
		for _, rid := range removed {
			removedSet[rid] = true
			b.WriteString(EncodeDied(rid))
		}
		merged := make(map[string]bool, len(deadSet)+len(removedSet))
		for id := range deadSet {
			merged[id] = true
		}
		for id := range removedSet {
			merged[id] = true
		}
		tl.broadcastToSurvivors(ids, merged, b.String())
	}
}

// broadcastToSurvivors queues payload to every id in ids not present in
// exclude, using the tick-start snapshot as the addressee list so a
// player destroyed mid-tick is never targeted twice.
func (tl *TickLoop) broadcastToSurvivors(ids []string, exclude map[string]bool, payload string) {
	for _, id := range ids {
		if exclude[id] {
			continue
		}
		p, ok := tl.world.Players.Read(id)
		if !ok {
			continue
		}
		tl.queue.Push(p.Addr, payload)
	}
}
