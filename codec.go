package main

import (
	"strconv"
	"strings"
)

// Outbound opcodes (server -> client).
const (
	OpSelfInitial  = "1"
	OpSelfFull     = "2"
	OpSelfHead     = "21"
	OpSelfGrown    = "22"
	OpBaitNew      = "3"
	OpBaitConsumed = "4"
	OpEnemyNew     = "5"
	OpEnemyFull    = "6"
	OpEnemyHead    = "61"
	OpEnemyGrew    = "62"
	OpDied         = "7"
	OpYouDied      = "8"
	OpEnemyName    = "9"
)

// Inbound opcodes (client -> server).
const (
	InJoin            = "0"
	InSteer           = "2"
	InAnnounceName    = "9"
	InAccelerateStart = "10"
	InAccelerateStop  = "11"
)

const frameSentinel = "$"

// formatCoord renders a coordinate at the wire's fixed 4-decimal precision.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// frame joins an opcode and its fields into a single sentinel-prefixed message.
func frame(fields ...string) string {
	var b strings.Builder
	b.WriteString(frameSentinel)
	b.WriteString(strings.Join(fields, ","))
	return b.String()
}

func nodeFields(nodes []Node) []string {
	fields := make([]string, 0, len(nodes)*2)
	for _, n := range nodes {
		fields = append(fields, formatCoord(n.X), formatCoord(n.Y))
	}
	return fields
}

// EncodeSelfInitial builds the initial self-snake frame sent on join.
func EncodeSelfInitial(nodes []Node) string {
	return frame(append([]string{OpSelfInitial}, nodeFields(nodes)...)...)
}

// EncodeSelfFull builds a full self-update frame (method 2).
func EncodeSelfFull(nodes []Node) string {
	return frame(append([]string{OpSelfFull}, nodeFields(nodes)...)...)
}

// EncodeSelfHead builds a head-only self-update frame (method 21).
func EncodeSelfHead(head Node) string {
	return frame(OpSelfHead, formatCoord(head.X), formatCoord(head.Y))
}

// EncodeSelfGrown builds the grown acknowledgement used under the
// head-only self-update protocol.
func EncodeSelfGrown() string {
	return frame(OpSelfGrown)
}

// EncodeBaitNew builds a new-bait frame.
func EncodeBaitNew(x, y, size float64) string {
	return frame(OpBaitNew, formatCoord(x), formatCoord(y), formatCoord(size))
}

// EncodeBaitConsumed builds a bait-deletion frame.
func EncodeBaitConsumed(x, y float64) string {
	return frame(OpBaitConsumed, formatCoord(x), formatCoord(y))
}

// EncodeEnemyNew builds an initial enemy-snake frame.
func EncodeEnemyNew(id, name string, nodes []Node) string {
	fields := append([]string{OpEnemyNew, id, name}, nodeFields(nodes)...)
	return frame(fields...)
}

// EncodeEnemyFull builds a full enemy-update frame (method 6).
func EncodeEnemyFull(id string, nodes []Node) string {
	fields := append([]string{OpEnemyFull, id}, nodeFields(nodes)...)
	return frame(fields...)
}

// EncodeEnemyHead builds a head-only enemy-update frame (method 61).
func EncodeEnemyHead(id string, head Node) string {
	return frame(OpEnemyHead, id, formatCoord(head.X), formatCoord(head.Y))
}

// EncodeEnemyGrew builds an enemy-grew notification.
func EncodeEnemyGrew(id string) string {
	return frame(OpEnemyGrew, id)
}

// EncodeDied builds a death notice naming the id that died.
func EncodeDied(id string) string {
	return frame(OpDied, id)
}

// EncodeYouDied builds the you-died frame sent to the victim itself.
func EncodeYouDied() string {
	return frame(OpYouDied)
}

// EncodeEnemyName builds an enemy display-name announcement. The name
// itself is not part of the wire payload (spec §6: `9,id`). The name
// reaches other clients only inside `5,id,name,...` new-enemy frames,
// which are sent to clients that join after the name was set.
func EncodeEnemyName(id string) string {
	return frame(OpEnemyName, id)
}

// Command is one parsed inbound message: an opcode and its raw string
// arguments, exactly as split from the wire.
type Command struct {
	Opcode string
	Args   []string
}

// Float returns Args[i] parsed as a float64, or 0.0 if the index is out
// of range or the token doesn't parse — malformed numbers never cause
// the frame to be dropped, only the offending field to read as zero.
func (c Command) Float(i int) float64 {
	if i < 0 || i >= len(c.Args) {
		return 0.0
	}
	v, err := strconv.ParseFloat(c.Args[i], 64)
	if err != nil {
		return 0.0
	}
	return v
}

// String returns Args[i], or "" if the index is out of range.
func (c Command) String(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return c.Args[i]
}

// ParseDatagram splits a raw datagram into its constituent commands.
// Messages are separated by the sentinel '$'; a datagram that doesn't
// start with it still yields its first token (lenient toward clients
// that omit the opening sentinel on a single-message datagram).
func ParseDatagram(data []byte) []Command {
	raw := strings.Split(string(data), frameSentinel)
	cmds := make([]Command, 0, len(raw))
	for _, msg := range raw {
		if msg == "" {
			continue
		}
		tokens := strings.Split(msg, ",")
		cmds = append(cmds, Command{Opcode: tokens[0], Args: tokens[1:]})
	}
	return cmds
}
