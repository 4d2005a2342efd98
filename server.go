package main

import (
	"log"
	"sync"
	"time"
)

// Server wires the world, transport, and tick loop together and owns
// the shutdown sequence described in the concurrency model: stop the
// ticker after its current tick, stop receiving, drain the outbound
// queue for a grace period, then close the socket.
type Server struct {
	world     *World
	queue     *OutboundQueue
	transport *Transport
	tick      *TickLoop
	done      chan struct{}
	sendDone  chan struct{}
}

// NewServer binds a UDP socket at addr and assembles the server, ready
// to Run.
func NewServer(addr string) (*Server, error) {
	world := NewWorld()
	queue := NewOutboundQueue(OutboundQueueCap)
	transport, err := NewTransport(addr, world, queue)
	if err != nil {
		return nil, err
	}
	return &Server{
		world:     world,
		queue:     queue,
		transport: transport,
		tick:      NewTickLoop(world, queue),
		done:      make(chan struct{}),
		sendDone:  make(chan struct{}),
	}, nil
}

// Run starts the receiver, sender, and ticker and blocks until all
// three have exited (i.e. until Shutdown completes).
func (s *Server) Run() {
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		s.transport.Receive(s.done)
	}()
	go func() {
		defer wg.Done()
		defer close(s.sendDone)
		s.transport.Send()
	}()
	go func() {
		defer wg.Done()
		s.tick.Run(s.done)
	}()

	wg.Wait()
}

// Shutdown stops the ticker, stops the receiver, drains whatever is
// still queued for ShutdownGraceMS, then closes the socket once the
// sender has actually finished writing the drained backlog.
func (s *Server) Shutdown() {
	close(s.done)
	s.transport.StopReceiving()

	time.Sleep(ShutdownGraceMS * time.Millisecond)

	s.queue.Close()
	<-s.sendDone
	if err := s.transport.Close(); err != nil {
		log.Printf("server: close error: %v", err)
	}
}
