package main

import (
	"os"
	"strconv"
)

// Game configuration constants, named and grouped the way the original
// implementation's constants block is: server/network, snake kinematics,
// bait, and world geometry.
const (
	// Server
	ServerNetwork = "udp"
	ServerAddr    = "0.0.0.0:3000"

	// Game loop
	GameLoopDelayMS = 10 // ticks every 10ms

	// Snake
	SnakeInitialLength      = 5
	SnakeSpeed              = 1.0
	SnakeSpeedAccelerate    = 2.0 // multiplier while accelerating
	SnakeSkinColorRange     = 255
	SnakeRotateSpeed        = 5.0 // degrees per tick, saturating
	SnakeNodeSpace          = 0.0 // spacing between freshly spawned nodes
	SnakeInitialSize        = 17.0
	SnakeItIsTimeToShorter  = 20 // ticks of sustained acceleration before auto-shorten
	SnakeMaxNodes           = 500
	SnakeAccelerateDropSize = 5.0 // size of the bait dropped by auto-shorten

	// SnakeNodeInitialDistance is sqrt(50), the reference spacing the
	// spring-chain model normalizes node velocity against.
	SnakeNodeInitialDistance = 7.0710678118654755

	// Bait
	MaxBaitColorRange  = 255
	MaxBaitSize        = 10.0
	MaxBaits           = 1000
	MaxBaitsSizeOnDead = 15.0

	// World geometry — playable rectangle [OffsetX, TrueMapWidth] x [OffsetY, TrueMapHeight]
	OffsetX       = 800.0
	OffsetY       = 800.0
	TrueMapWidth  = 3200.0
	TrueMapHeight = 3200.0

	// SnakeSpawnMargin keeps the spawn point away from the rectangle edges.
	SnakeSpawnMargin = 500.0

	// Player lifecycle
	PlayerInactivityTimeoutSec = 30

	// Transport
	MaxDatagramBytes = 1024
	OutboundQueueCap = 1000
	ShutdownGraceMS  = 250
)

// Protocol-variant knobs (spec §6). All three default to the original
// server's live configuration and can be overridden via environment
// variables for operators who want the older/head-only wire formats.
const (
	UpdatePlayerMethodRigid  = 1
	UpdatePlayerMethodSpring = 2

	SendSelfMethodFull = 2
	SendSelfMethodHead = 21

	UpdateEnemyMethodFull = 6
	UpdateEnemyMethodHead = 61
)

var (
	// UpdatePlayerMethod selects the kinematic model used by Snake.Step.
	UpdatePlayerMethod = envInt("SERVER_CURRENT_UPDATE_PLAYER_METHOD", UpdatePlayerMethodSpring)
	// SendSelfMethod selects how a player's own snake is reported back to it.
	SendSelfMethod = envInt("SERVER_CURRENT_SENDING_PLAYER_METHOD", SendSelfMethodFull)
	// UpdateEnemyMethod selects how other players' snakes are reported.
	UpdateEnemyMethod = envInt("SERVER_UPDATE_ENEMY_METHOD", UpdateEnemyMethodFull)
)

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
