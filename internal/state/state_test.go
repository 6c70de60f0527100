package state

import (
	"sync"
	"testing"
	"time"
)

func TestAttributionLookupAndClear(t *testing.T) {
	a := NewAttribution()

	if _, ok := a.Lookup("g1", "u1"); ok {
		t.Fatal("lookup on empty store succeeded")
	}

	a.Record("g1", "u1", "mod1")
	a.Record("g1", "u2", "mod2")
	a.Record("g2", "u1", "mod3")

	if mod, ok := a.Lookup("g1", "u1"); !ok || mod != "mod1" {
		t.Fatalf("Lookup(g1,u1) = %q, %v", mod, ok)
	}
	if mod, _ := a.Lookup("g2", "u1"); mod != "mod3" {
		t.Fatalf("guilds not isolated, got %q", mod)
	}

	a.Clear("g1", "u1")
	if _, ok := a.Lookup("g1", "u1"); ok {
		t.Fatal("entry survived Clear")
	}
	if _, ok := a.Lookup("g1", "u2"); !ok {
		t.Fatal("Clear removed an unrelated entry")
	}
}

func TestChannelSetRemoveReportsPresence(t *testing.T) {
	s := NewChannelSet()
	s.Add("c1")

	if !s.Has("c1") {
		t.Fatal("Has(c1) = false after Add")
	}
	if !s.Remove("c1") {
		t.Fatal("Remove(c1) = false for a present channel")
	}
	if s.Remove("c1") {
		t.Fatal("Remove(c1) = true for an absent channel")
	}
}

func TestSnapshotStoreRefusesSecond(t *testing.T) {
	s := NewSnapshotStore()

	first := Snapshot{"r1": {TargetID: "r1", Deny: 1024, Existed: true}}
	if !s.Put("c1", first) {
		t.Fatal("first Put refused")
	}
	if s.Put("c1", Snapshot{}) {
		t.Fatal("second Put accepted while snapshot outstanding")
	}

	snap, ok := s.Take("c1")
	if !ok {
		t.Fatal("Take found nothing")
	}
	if snap["r1"].Deny != 1024 {
		t.Fatal("Take returned the second snapshot, want the first")
	}
	if _, ok := s.Take("c1"); ok {
		t.Fatal("snapshot survived Take")
	}
	if !s.Put("c1", Snapshot{}) {
		t.Fatal("Put refused after Take cleared the slot")
	}
}

func TestAFKServerShadowsGlobal(t *testing.T) {
	s := NewAFKStore()
	now := time.Now()

	s.Set(AFKGlobal, "", "u1", AFKRecord{Reason: "sleep", Since: now})
	s.Set(AFKServer, "g1", "u1", AFKRecord{Reason: "lunch", Since: now})

	rec, scope, ok := s.Get("g1", "u1")
	if !ok || scope != AFKServer || rec.Reason != "lunch" {
		t.Fatalf("Get = %+v scope=%v ok=%v, want server record", rec, scope, ok)
	}

	// From another guild only the global record is visible.
	rec, scope, ok = s.Get("g2", "u1")
	if !ok || scope != AFKGlobal || rec.Reason != "sleep" {
		t.Fatalf("Get from other guild = %+v scope=%v ok=%v", rec, scope, ok)
	}

	// Pop takes the server record first, leaving the global one.
	if _, scope, _ := s.Pop("g1", "u1"); scope != AFKServer {
		t.Fatal("Pop did not take the server record first")
	}
	if _, scope, ok := s.Pop("g1", "u1"); !ok || scope != AFKGlobal {
		t.Fatalf("second Pop scope=%v ok=%v, want global", scope, ok)
	}
	if _, _, ok := s.Pop("g1", "u1"); ok {
		t.Fatal("third Pop found a record")
	}
}

func TestPrefixesFallback(t *testing.T) {
	p := NewPrefixes()
	if got := p.Get("g1", "."); got != "." {
		t.Fatalf("Get fallback = %q", got)
	}
	p.Set("g1", "!")
	if got := p.Get("g1", "."); got != "!" {
		t.Fatalf("Get = %q after Set", got)
	}
}

func TestReactionRolesLookup(t *testing.T) {
	r := NewReactionRoles()
	r.Set("g1", "m1", "🎯", "role1")
	r.Set("g1", "m1", "custom_emoji", "role2")

	if id, ok := r.Lookup("g1", "m1", "🎯"); !ok || id != "role1" {
		t.Fatalf("Lookup = %q, %v", id, ok)
	}
	if _, ok := r.Lookup("g1", "m2", "🎯"); ok {
		t.Fatal("lookup matched wrong message")
	}
	if got := r.Count("g1"); got != 2 {
		t.Fatalf("Count = %d, want 2", got)
	}
}

func TestAttributionConcurrentAccess(t *testing.T) {
	a := NewAttribution()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.Record("g1", "u1", "mod")
				a.Lookup("g1", "u1")
				a.Clear("g1", "u1")
			}
		}()
	}
	wg.Wait()
}
