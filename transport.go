package main

import (
	"log"
	"net"
	"strings"
	"sync"
	"time"
)

type outboundItem struct {
	addr    *net.UDPAddr
	payload string
}

// OutboundQueue is the bounded FIFO shared by the tick loop, the
// receiver, and the sender. Push never blocks: once full, it drops the
// oldest pending item addressed to the same peer, or the oldest item
// overall if none match, so one slow peer can't starve the others and
// the tick never waits on a full queue.
type OutboundQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []outboundItem
	cap    int
	closed bool
}

// NewOutboundQueue returns a queue bounded at capacity items.
func NewOutboundQueue(capacity int) *OutboundQueue {
	q := &OutboundQueue{cap: capacity}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push enqueues a payload addressed to addr.
func (q *OutboundQueue) Push(addr *net.UDPAddr, payload string) {
	q.mu.Lock()
	if len(q.items) >= q.cap {
		q.dropOldestForLocked(addr)
	}
	q.items = append(q.items, outboundItem{addr: addr, payload: payload})
	q.mu.Unlock()
	q.cond.Signal()
}

func (q *OutboundQueue) dropOldestForLocked(addr *net.UDPAddr) {
	for i, it := range q.items {
		if addrEqual(it.addr, addr) {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
	if len(q.items) > 0 {
		q.items = q.items[1:]
	}
}

// Pop blocks until an item is available or the queue has been closed
// and drained. It returns ok=false only once both are true, so a
// shutdown still flushes whatever was queued before Close.
func (q *OutboundQueue) Pop() (outboundItem, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return outboundItem{}, false
	}
	it := q.items[0]
	q.items = q.items[1:]
	return it, true
}

// Close marks the queue closed and wakes any blocked Pop.
func (q *OutboundQueue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Len reports the current queue depth.
func (q *OutboundQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Transport owns the single UDP socket and the two tasks that share
// it: Receive demultiplexes inbound datagrams by source address, Send
// drains the outbound queue. There is no per-client connection object;
// identity is carried entirely by the source address.
type Transport struct {
	conn  *net.UDPConn
	world *World
	queue *OutboundQueue
}

// NewTransport binds a UDP socket at addr and returns a Transport ready
// to run its receive and send loops.
func NewTransport(addr string, world *World, queue *OutboundQueue) (*Transport, error) {
	udpAddr, err := net.ResolveUDPAddr(ServerNetwork, addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP(ServerNetwork, udpAddr)
	if err != nil {
		return nil, err
	}
	return &Transport{conn: conn, world: world, queue: queue}, nil
}

// Close closes the underlying socket, unblocking any pending ReadFromUDP.
func (t *Transport) Close() error {
	return t.conn.Close()
}

// StopReceiving forces the in-flight ReadFromUDP in Receive to return,
// without closing the socket the sender is still writing to.
func (t *Transport) StopReceiving() {
	_ = t.conn.SetReadDeadline(time.Now())
}

// Receive blocks reading datagrams until done is signaled: once done is
// closed, the next read error (such as the deadline set by
// StopReceiving) ends it quietly. Any read error while done is still
// open, including one from a closed socket, is logged and the loop
// continues.
func (t *Transport) Receive(done <-chan struct{}) {
	buf := make([]byte, MaxDatagramBytes)
	for {
		n, addr, err := t.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-done:
				return
			default:
			}
			log.Printf("transport: read error: %v", err)
			continue
		}
		t.handleDatagram(buf[:n], addr)
	}
}

func (t *Transport) handleDatagram(data []byte, addr *net.UDPAddr) {
	for _, cmd := range ParseDatagram(data) {
		t.handleCommand(cmd, addr)
	}
}

func (t *Transport) handleCommand(cmd Command, addr *net.UDPAddr) {
	if cmd.Opcode == InJoin {
		t.handleJoin(addr)
		return
	}

	id, ok := t.world.FindIDByAddr(addr)
	if !ok {
		// Commands preceding the join handshake are silently dropped.
		return
	}

	switch cmd.Opcode {
	case InSteer:
		t.world.UpdateXY(id, cmd.Float(0), cmd.Float(1), cmd.Float(2), cmd.Float(3))
	case InAnnounceName:
		name := cmd.String(0)
		t.world.UpdateName(id, name)
		t.broadcastExcept(id, EncodeEnemyName(id))
	case InAccelerateStart:
		t.world.UpdateAcceleration(id, true)
	case InAccelerateStop:
		t.world.UpdateAcceleration(id, false)
	default:
		// Unknown opcodes are silently dropped.
	}
}

// handleJoin allocates a new player and brings it up to date on the
// rest of the world before announcing it to everyone else: its own
// initial snake, every existing enemy, and every live bait, in that
// order, followed by its own enemy-announcement to existing players.
func (t *Transport) handleJoin(addr *net.UDPAddr) {
	p := t.world.Join(addr)
	t.queue.Push(addr, EncodeSelfInitial(p.Snake.Nodes))

	t.world.Lock()
	var enemyFrames, baitFrames []string
	for _, id := range t.world.Players.Keys() {
		if id == p.ID {
			continue
		}
		other, ok := t.world.Players.Read(id)
		if !ok {
			continue
		}
		enemyFrames = append(enemyFrames, EncodeEnemyNew(other.ID, other.Name, other.Snake.Nodes))
	}
	for _, baitID := range t.world.Baits.Keys() {
		b, ok := t.world.Baits.Read(baitID)
		if !ok {
			continue
		}
		baitFrames = append(baitFrames, EncodeBaitNew(b.X, b.Y, b.Size))
	}
	t.world.Unlock()

	if len(enemyFrames) > 0 {
		t.queue.Push(addr, strings.Join(enemyFrames, ""))
	}
	if len(baitFrames) > 0 {
		t.queue.Push(addr, strings.Join(baitFrames, ""))
	}

	t.broadcastExcept(p.ID, EncodeEnemyNew(p.ID, p.Name, p.Snake.Nodes))
}

// broadcastExcept queues payload to every registered player other than
// excludeID. Used by the receive path for the name-announcement relay;
// the tick loop has its own broadcast helper that works from a
// tick-start snapshot instead of a live scan.
func (t *Transport) broadcastExcept(excludeID, payload string) {
	t.world.Lock()
	defer t.world.Unlock()
	for _, id := range t.world.Players.Keys() {
		if id == excludeID {
			continue
		}
		p, ok := t.world.Players.Read(id)
		if !ok {
			continue
		}
		t.queue.Push(p.Addr, payload)
	}
}

// Send drains the outbound queue and writes each item to the socket
// until the queue reports closed-and-empty.
func (t *Transport) Send() {
	for {
		item, ok := t.queue.Pop()
		if !ok {
			return
		}
		if _, err := t.conn.WriteToUDP([]byte(item.payload), item.addr); err != nil {
			log.Printf("transport: write error to %v: %v", item.addr, err)
		}
	}
}
