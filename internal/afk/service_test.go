package afk

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/state"
)

func TestTaggedNick(t *testing.T) {
	nick, ok := taggedNick("someone")
	if !ok || nick != "[AFK] someone" {
		t.Fatalf("taggedNick = %q, %v", nick, ok)
	}

	// 26 characters of nickname pushes the tagged form past 32.
	long := strings.Repeat("x", 27)
	if _, ok := taggedNick(long); ok {
		t.Error("taggedNick accepted a name that overflows the limit")
	}

	// Exactly at the limit is allowed.
	exact := strings.Repeat("x", 32-len(NickPrefix))
	if nick, ok := taggedNick(exact); !ok || len(nick) != 32 {
		t.Errorf("taggedNick(%q) = %q, %v", exact, nick, ok)
	}
}

func TestCounterStartCap(t *testing.T) {
	tests := []struct{ gone, want int }{
		{0, 0},
		{1, 1},
		{45, 45},
		{60, 60},
		{61, 60},
		{7200, 60},
	}
	for _, tt := range tests {
		if got := counterStart(tt.gone); got != tt.want {
			t.Errorf("counterStart(%d) = %d, want %d", tt.gone, got, tt.want)
		}
	}
}

func TestWelcomeCounterOwnedByScheduler(t *testing.T) {
	sched := scheduler.New(zap.NewNop())
	a := NewService(state.New(), sched, zap.NewNop())

	a.scheduleCounter(nil, "chan", "msg", 7200)
	if got := sched.Len(); got != 1 {
		t.Fatalf("pending tasks = %d, want 1", got)
	}

	// Shutdown must stop the edit chain with everything else.
	sched.Shutdown()
	if got := sched.Len(); got != 0 {
		t.Fatalf("pending tasks after shutdown = %d, want 0", got)
	}
}
