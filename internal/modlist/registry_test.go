package modlist

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
)

func testRegistryWithView(t *testing.T) (*Registry, *scheduler.Registry, *View) {
	t.Helper()
	sched := scheduler.New(zap.NewNop())
	r := NewRegistry(sched, zap.NewNop())
	v := newView("1", "g1", "c1", &TimeoutSource{}, 3, []Entry{{SubjectID: "u1", Mention: "<@u1>"}})
	r.views[v.ID] = v
	v.expiry = sched.After("modlist-expire", time.Hour, func() {})
	return r, sched, v
}

func TestTouchUnderSimultaneousClicks(t *testing.T) {
	r, sched, v := testRegistryWithView(t)
	defer sched.Shutdown()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				r.touch(nil, v)
			}
		}()
	}
	wg.Wait()

	// Every re-arm must cancel its predecessor: exactly one idle
	// timer may survive, or a loser's stale timer could tear the
	// view down while it is in use.
	if got := sched.Len(); got != 1 {
		t.Fatalf("pending idle timers = %d, want 1", got)
	}
}

func TestTouchAfterRemovalDoesNotRearm(t *testing.T) {
	r, sched, v := testRegistryWithView(t)
	defer sched.Shutdown()

	r.remove(v.ID)
	if got := sched.Len(); got != 0 {
		t.Fatalf("pending timers after remove = %d, want 0", got)
	}

	r.touch(nil, v)
	if got := sched.Len(); got != 0 {
		t.Fatalf("touch re-armed a removed view: %d pending timers", got)
	}
}

func TestActionErrorMessagesDistinguishClasses(t *testing.T) {
	forbidden := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}}
	badRequest := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusBadRequest}}
	plain := errors.New("connection reset")

	src := &TimeoutSource{}
	if got := actErrorMessage(src, forbidden); got != "I don't have permission to untimeout that user." {
		t.Errorf("forbidden message = %q", got)
	}
	if got := actErrorMessage(src, fmt.Errorf("acting on u1: %w", forbidden)); got != "I don't have permission to untimeout that user." {
		t.Errorf("wrapped forbidden message = %q", got)
	}
	if got := actErrorMessage(&BanSource{}, forbidden); got != "I don't have permission to unban that user." {
		t.Errorf("ban forbidden message = %q", got)
	}
	if got := actErrorMessage(src, badRequest); got == actErrorMessage(src, plain) {
		t.Error("platform and unexpected errors render the same message")
	}
}

func TestBulkFailureReasons(t *testing.T) {
	forbidden := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusForbidden}}
	if got := failureReason(forbidden); got != "missing permissions" {
		t.Errorf("failureReason(403) = %q", got)
	}
	server := &discordgo.RESTError{Response: &http.Response{StatusCode: http.StatusInternalServerError}}
	if got := failureReason(server); got != "platform error: "+server.Error() {
		t.Errorf("failureReason(500) = %q", got)
	}
	if got := failureReason(errors.New("boom")); got != "unexpected error: boom" {
		t.Errorf("failureReason(plain) = %q", got)
	}
}
