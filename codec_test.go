package main

import "testing"

func TestParseDatagramSplitsOnSentinel(t *testing.T) {
	data := []byte("$0$2,10,20,800,600$9,bob")
	cmds := ParseDatagram(data)
	if len(cmds) != 3 {
		t.Fatalf("expected 3 commands, got %d: %+v", len(cmds), cmds)
	}
	if cmds[0].Opcode != InJoin {
		t.Fatalf("expected first opcode %q, got %q", InJoin, cmds[0].Opcode)
	}
	if cmds[1].Opcode != InSteer || len(cmds[1].Args) != 4 {
		t.Fatalf("unexpected steer command: %+v", cmds[1])
	}
	if cmds[2].Opcode != InAnnounceName || cmds[2].String(0) != "bob" {
		t.Fatalf("unexpected name command: %+v", cmds[2])
	}
}

func TestParseDatagramMalformedNumberIsZero(t *testing.T) {
	cmds := ParseDatagram([]byte("$2,not-a-number,20,800,600"))
	if len(cmds) != 1 {
		t.Fatalf("expected 1 command, got %d", len(cmds))
	}
	if cmds[0].Float(0) != 0.0 {
		t.Fatalf("expected malformed number to parse as 0.0, got %v", cmds[0].Float(0))
	}
	if cmds[0].Float(1) != 20.0 {
		t.Fatalf("expected well-formed field to parse normally, got %v", cmds[0].Float(1))
	}
}

func TestParseDatagramMissingFieldIsZero(t *testing.T) {
	cmds := ParseDatagram([]byte("$2,10"))
	if cmds[0].Float(3) != 0.0 {
		t.Fatalf("expected out-of-range field to read as 0.0, got %v", cmds[0].Float(3))
	}
}

func TestRoundTripFraming(t *testing.T) {
	nodes := []Node{{X: 1.5, Y: 2.5}, {X: 3.25, Y: 4.75}}

	cases := []string{
		EncodeSelfInitial(nodes),
		EncodeSelfFull(nodes),
		EncodeSelfHead(nodes[0]),
		EncodeSelfGrown(),
		EncodeBaitNew(10, 20, 5),
		EncodeBaitConsumed(10, 20),
		EncodeEnemyNew("abc", "bob", nodes),
		EncodeEnemyFull("abc", nodes),
		EncodeEnemyHead("abc", nodes[0]),
		EncodeEnemyGrew("abc"),
		EncodeDied("abc"),
		EncodeYouDied(),
		EncodeEnemyName("abc"),
	}

	for _, msg := range cases {
		cmds := ParseDatagram([]byte(msg))
		if len(cmds) != 1 {
			t.Fatalf("expected exactly one parsed command from %q, got %d", msg, len(cmds))
		}
		if got := frame(append([]string{cmds[0].Opcode}, cmds[0].Args...)...); got != msg {
			t.Fatalf("re-framing the parsed tokens of %q gave %q", msg, got)
		}
	}
}

func TestEncodeSelfFullFormatsFourDecimals(t *testing.T) {
	msg := EncodeSelfFull([]Node{{X: 1, Y: 2.1}})
	want := "$2,1.0000,2.1000"
	if msg != want {
		t.Fatalf("got %q, want %q", msg, want)
	}
}
