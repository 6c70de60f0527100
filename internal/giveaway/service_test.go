package giveaway

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
)

func testService() *Service {
	return NewService(scheduler.New(zap.NewNop()), zap.NewNop())
}

func TestListFiltersAndSorts(t *testing.T) {
	svc := testService()
	now := time.Now()
	svc.active["m1"] = &Giveaway{MessageID: "m1", GuildID: "g1", EndTime: now.Add(2 * time.Hour)}
	svc.active["m2"] = &Giveaway{MessageID: "m2", GuildID: "g1", EndTime: now.Add(time.Hour)}
	svc.active["m3"] = &Giveaway{MessageID: "m3", GuildID: "g2", EndTime: now}

	got := svc.List("g1")
	if len(got) != 2 {
		t.Fatalf("List returned %d giveaways, want 2", len(got))
	}
	if got[0].MessageID != "m2" || got[1].MessageID != "m1" {
		t.Errorf("List order = [%s %s], want soonest first", got[0].MessageID, got[1].MessageID)
	}
}

func TestIsActive(t *testing.T) {
	svc := testService()
	if svc.IsActive("m1") {
		t.Error("IsActive true for unknown message")
	}
	svc.active["m1"] = &Giveaway{MessageID: "m1"}
	if !svc.IsActive("m1") {
		t.Error("IsActive false for registered giveaway")
	}
}
