package main

import (
	"net"
	"strings"
	"testing"
	"time"
)

// drainQueue closes q and collects every item still pending, for tests
// that want to inspect exactly what a tick queued without blocking.
func drainQueue(q *OutboundQueue) []outboundItem {
	q.Close()
	var items []outboundItem
	for {
		it, ok := q.Pop()
		if !ok {
			return items
		}
		items = append(items, it)
	}
}

func payloadsTo(items []outboundItem, a *net.UDPAddr) string {
	var b strings.Builder
	for _, it := range items {
		if addrEqual(it.addr, a) {
			b.WriteString(it.payload)
		}
	}
	return b.String()
}

func TestTickEatBaitGrowsSnakeAndBroadcastsConsumption(t *testing.T) {
	world := NewWorld()
	queue := NewOutboundQueue(OutboundQueueCap)
	tl := NewTickLoop(world, queue)

	a := addr(5001)
	snake := &Snake{Nodes: []Node{{X: 1500, Y: 1500}}, Speed: SnakeSpeed}
	p := world.Players.Create("eater", snake, a)
	world.Players.UpdateXY(p.ID, 50, 50, 100, 100) // steer at window center: no movement
	baitID := world.Baits.Create(1500, 1500, 7, 10)

	tl.tick()

	if _, ok := world.Baits.Read(baitID); ok {
		t.Fatalf("expected eaten bait to be destroyed")
	}
	if len(p.Snake.Nodes) != 2 {
		t.Fatalf("expected snake to grow to 2 nodes, got %d", len(p.Snake.Nodes))
	}

	out := payloadsTo(drainQueue(queue), a)
	if !strings.Contains(out, EncodeBaitConsumed(1500, 1500)) {
		t.Fatalf("expected bait-consumed frame in output, got %q", out)
	}
	if !strings.Contains(out, EncodeEnemyGrew(p.ID)) {
		t.Fatalf("expected a grown notification for the eater regardless of enemy-update method, got %q", out)
	}
}

func TestTickHeadOnCollisionKillsBoth(t *testing.T) {
	world := NewWorld()
	queue := NewOutboundQueue(OutboundQueueCap)
	tl := NewTickLoop(world, queue)

	a1, a2 := addr(5002), addr(5003)
	s1 := &Snake{Nodes: []Node{{X: 1600, Y: 1600}}, Speed: SnakeSpeed}
	s2 := &Snake{Nodes: []Node{{X: 1600, Y: 1600}}, Speed: SnakeSpeed}
	p1 := world.Players.Create("p1", s1, a1)
	p2 := world.Players.Create("p2", s2, a2)
	world.Players.UpdateXY(p1.ID, 50, 50, 100, 100)
	world.Players.UpdateXY(p2.ID, 50, 50, 100, 100)

	tl.tick()

	if _, ok := world.Players.Read(p1.ID); ok {
		t.Fatalf("expected p1 removed after head-on collision")
	}
	if _, ok := world.Players.Read(p2.ID); ok {
		t.Fatalf("expected p2 removed after head-on collision")
	}

	items := drainQueue(queue)
	you1 := payloadsTo(items, a1)
	you2 := payloadsTo(items, a2)
	if !strings.Contains(you1, EncodeYouDied()) {
		t.Fatalf("expected p1 to receive you-died, got %q", you1)
	}
	if !strings.Contains(you2, EncodeYouDied()) {
		t.Fatalf("expected p2 to receive you-died, got %q", you2)
	}
}

func TestTickAccelerateShortenDropsTailAndResetsTimer(t *testing.T) {
	world := NewWorld()
	queue := NewOutboundQueue(OutboundQueueCap)
	tl := NewTickLoop(world, queue)

	a := addr(5004)
	// Spaced out along X so the bait dropped at the tail does not lie under
	// the head, where step 6 would eat it and regrow the snake.
	nodes := make([]Node, 10)
	for i := range nodes {
		nodes[i] = Node{X: 1500 + float64(i)*10, Y: 1500}
	}
	snake := &Snake{Nodes: nodes, Speed: SnakeSpeed, Accelerate: true, AccelerateTime: SnakeItIsTimeToShorter - 1}
	p := world.Players.Create("racer", snake, a)
	world.Players.UpdateXY(p.ID, 50, 50, 100, 100)

	tl.tick()

	if p.Snake.AccelerateTime != 0 {
		t.Fatalf("expected accelerate_time reset to 0, got %d", p.Snake.AccelerateTime)
	}
	if len(p.Snake.Nodes) != 9 {
		t.Fatalf("expected snake shortened to 9 nodes, got %d", len(p.Snake.Nodes))
	}

	out := payloadsTo(drainQueue(queue), a)
	if !strings.Contains(out, EncodeBaitNew(1590, 1500, SnakeAccelerateDropSize)) {
		t.Fatalf("expected a dropped bait at the former tail, got %q", out)
	}
}

func TestTickInactivitySweepPrunesAndBroadcasts(t *testing.T) {
	world := NewWorld()
	queue := NewOutboundQueue(OutboundQueueCap)
	tl := NewTickLoop(world, queue)

	stale := addr(5005)
	fresh := addr(5006)
	staleSnake := &Snake{Nodes: []Node{{X: 1000, Y: 1000}}, Speed: SnakeSpeed}
	freshSnake := &Snake{Nodes: []Node{{X: 2000, Y: 2000}}, Speed: SnakeSpeed}
	stalePlayer := world.Players.Create("stale", staleSnake, stale)
	world.Players.Create("fresh", freshSnake, fresh)
	world.Players.UpdateXY(stalePlayer.ID, 50, 50, 100, 100)
	stalePlayer.LastSeen = stalePlayer.LastSeen.Add(-time.Hour)

	tl.tick()

	if _, ok := world.Players.Read(stalePlayer.ID); ok {
		t.Fatalf("expected stale player pruned by inactivity sweep")
	}

	out := payloadsTo(drainQueue(queue), fresh)
	if !strings.Contains(out, EncodeDied(stalePlayer.ID)) {
		t.Fatalf("expected survivor to be notified of the prune, got %q", out)
	}
}
