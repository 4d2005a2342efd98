package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	addr := ServerAddr
	if env := os.Getenv("SERVER_ADDR"); env != "" {
		addr = env
	}

	srv, err := NewServer(addr)
	if err != nil {
		log.Fatalf("server: bind failed: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		log.Printf("server: shutting down")
		srv.Shutdown()
	}()

	log.Printf("server listening on %s (udp)", addr)
	srv.Run()
	log.Printf("server: stopped")
}
