package tracker

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

func event(typ, raw string) *discordgo.Event {
	return &discordgo.Event{Type: typ, RawData: []byte(raw)}
}

func TestMessageCounting(t *testing.T) {
	trk := New(nil, zap.NewNop())

	trk.HandleEvent(nil, event("MESSAGE_CREATE", `{"guild_id":"g1","author":{"id":"u1","bot":false}}`))
	trk.HandleEvent(nil, event("MESSAGE_CREATE", `{"guild_id":"g1","author":{"id":"u2","bot":false}}`))
	trk.HandleEvent(nil, event("MESSAGE_CREATE", `{"guild_id":"g2","author":{"id":"u1","bot":false}}`))

	if msgs, _ := trk.Counts("g1"); msgs != 2 {
		t.Errorf("g1 messages = %d, want 2", msgs)
	}
	if msgs, _ := trk.Counts("g2"); msgs != 1 {
		t.Errorf("g2 messages = %d, want 1", msgs)
	}
}

func TestBotMessagesIgnored(t *testing.T) {
	trk := New(nil, zap.NewNop())
	trk.HandleEvent(nil, event("MESSAGE_CREATE", `{"guild_id":"g1","author":{"id":"u1","bot":true}}`))
	if msgs, _ := trk.Counts("g1"); msgs != 0 {
		t.Errorf("bot message counted, got %d", msgs)
	}
}

func TestDirectMessagesIgnored(t *testing.T) {
	trk := New(nil, zap.NewNop())
	trk.HandleEvent(nil, event("MESSAGE_CREATE", `{"author":{"id":"u1","bot":false}}`))
	if msgs, _ := trk.Counts(""); msgs != 0 {
		t.Errorf("DM counted, got %d", msgs)
	}
}

func TestJoinCounting(t *testing.T) {
	trk := New(nil, zap.NewNop())
	trk.HandleEvent(nil, event("GUILD_MEMBER_ADD", `{"guild_id":"g1","user":{"id":"u9"}}`))
	if _, joins := trk.Counts("g1"); joins != 1 {
		t.Errorf("joins = %d, want 1", joins)
	}
}

func TestUnrelatedEventsIgnored(t *testing.T) {
	trk := New(nil, zap.NewNop())
	trk.HandleEvent(nil, event("TYPING_START", `{"guild_id":"g1"}`))
	msgs, joins := trk.Counts("g1")
	if msgs != 0 || joins != 0 {
		t.Errorf("unrelated event counted: %d/%d", msgs, joins)
	}
}
