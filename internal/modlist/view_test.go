package modlist

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// fakeSource is a Source backed by a mutable slice, with per-subject
// action failures and optional per-action delay.
type fakeSource struct {
	mu       sync.Mutex
	entries  []Entry
	failIDs  map[string]bool
	actDelay time.Duration
	acted    []string
	notified []string
}

func (f *fakeSource) Kind() string         { return "untimeout" }
func (f *fakeSource) Title() string        { return "Timed Out Members" }
func (f *fakeSource) Color() int           { return utils.ColorNeutral }
func (f *fakeSource) Permission() int64    { return discordgo.PermissionModerateMembers }
func (f *fakeSource) DenyMessage() string  { return "no" }
func (f *fakeSource) EmptyMessage() string { return "All members have been untimed out." }
func (f *fakeSource) ActionLabel() string  { return "Untimeout" }
func (f *fakeSource) BulkLabel() string    { return "Untimeout All" }

func (f *fakeSource) Fetch() ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Entry, len(f.entries))
	copy(out, f.entries)
	return out, nil
}

func (f *fakeSource) Act(e Entry, actor *discordgo.User, bulk bool) error {
	if f.actDelay > 0 {
		time.Sleep(f.actDelay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failIDs[e.SubjectID] {
		return errors.New("missing permissions")
	}
	f.acted = append(f.acted, e.SubjectID)
	for i, cur := range f.entries {
		if cur.SubjectID == e.SubjectID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeSource) Notify(e Entry, actor *discordgo.User, bulk bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, e.SubjectID)
}

func makeEntries(n int, attributed func(i int) bool) []Entry {
	entries := make([]Entry, n)
	for i := range entries {
		id := fmt.Sprintf("u%d", i+1)
		mod := ""
		if attributed(i) {
			mod = "mod1"
		}
		entries[i] = Entry{
			SubjectID:   id,
			Mention:     "<@" + id + ">",
			Detail:      "expires in **5 minutes** (timed out by <@mod1>)",
			ModeratorID: mod,
		}
	}
	return entries
}

func testView(entries []Entry, src *fakeSource) *View {
	if src == nil {
		src = &fakeSource{}
	}
	src.entries = entries
	return newView("1", "g1", "c1", src, ModListPerPage, entries)
}

func TestLastPageIndex(t *testing.T) {
	tests := []struct {
		n, perPage, want int
	}{
		{0, 3, 0},
		{1, 3, 0},
		{3, 3, 0},
		{4, 3, 1},
		{7, 3, 2},
		{9, 3, 2},
		{10, 3, 3},
		{25, 10, 2},
	}
	for _, tt := range tests {
		if got := lastPageIndex(tt.n, tt.perPage); got != tt.want {
			t.Errorf("lastPageIndex(%d, %d) = %d, want %d", tt.n, tt.perPage, got, tt.want)
		}
	}
}

func TestNavigationClamps(t *testing.T) {
	v := testView(makeEntries(7, func(int) bool { return true }), nil)

	if v.Prev() {
		t.Error("Prev moved below page 0")
	}
	if !v.Next() || !v.Next() {
		t.Fatal("Next refused a valid move")
	}
	if v.page != 2 {
		t.Fatalf("page = %d, want 2", v.page)
	}
	if v.Next() {
		t.Error("Next moved past the last page")
	}
}

func TestEmbedIndicesAreGlobal(t *testing.T) {
	v := testView(makeEntries(7, func(int) bool { return true }), nil)
	v.Next()

	e := v.Embed()
	if !strings.Contains(e.Description, "`4.` <@u4>") {
		t.Errorf("page 2 should start at global index 4:\n%s", e.Description)
	}
	if strings.Contains(e.Description, "`1.`") {
		t.Errorf("page 2 leaked page-local indices:\n%s", e.Description)
	}
	if e.Footer.Text != "Page 2/3 (7 entries)" {
		t.Errorf("footer = %q", e.Footer.Text)
	}
}

func TestFooterSingularEntry(t *testing.T) {
	v := testView(makeEntries(1, func(int) bool { return true }), nil)
	if got := v.Embed().Footer.Text; got != "Page 1/1 (1 entry)" {
		t.Errorf("footer = %q", got)
	}
}

// Per-entry buttons exist only for attributed entries, while the bulk
// button is present whenever the list is non-empty.
func TestComponentAsymmetry(t *testing.T) {
	v := testView(makeEntries(3, func(i int) bool { return i == 1 }), nil)

	rows := v.Components()
	var buttons []discordgo.Button
	for _, row := range rows {
		for _, c := range row.(discordgo.ActionsRow).Components {
			buttons = append(buttons, c.(discordgo.Button))
		}
	}

	var actLabels, bulkLabels []string
	for _, b := range buttons {
		if strings.HasSuffix(b.CustomID, ":all") {
			bulkLabels = append(bulkLabels, b.Label)
		} else if strings.Contains(b.CustomID, ":act:") {
			actLabels = append(actLabels, b.Label)
		}
	}
	if len(actLabels) != 1 || actLabels[0] != "Untimeout 2" {
		t.Errorf("action buttons = %v, want exactly [Untimeout 2]", actLabels)
	}
	if len(bulkLabels) != 1 {
		t.Errorf("bulk buttons = %v, want exactly one", bulkLabels)
	}
}

func TestNoNavigationOnSinglePage(t *testing.T) {
	v := testView(makeEntries(3, func(int) bool { return true }), nil)
	for _, row := range v.Components() {
		for _, c := range row.(discordgo.ActionsRow).Components {
			id := c.(discordgo.Button).CustomID
			if strings.HasSuffix(id, ":prev") || strings.HasSuffix(id, ":next") {
				t.Errorf("single-page view has nav button %q", id)
			}
		}
	}
}

func TestButtonLabelsUseGlobalIndex(t *testing.T) {
	v := testView(makeEntries(5, func(int) bool { return true }), nil)
	v.Next()

	var labels []string
	for _, row := range v.Components() {
		for _, c := range row.(discordgo.ActionsRow).Components {
			b := c.(discordgo.Button)
			if strings.Contains(b.CustomID, ":act:") {
				labels = append(labels, b.Label)
			}
		}
	}
	want := []string{"Untimeout 4", "Untimeout 5"}
	if len(labels) != len(want) || labels[0] != want[0] || labels[1] != want[1] {
		t.Errorf("labels = %v, want %v", labels, want)
	}
}

func TestReloadClampsPage(t *testing.T) {
	src := &fakeSource{}
	v := testView(makeEntries(7, func(int) bool { return true }), src)
	v.page = 2

	src.mu.Lock()
	src.entries = src.entries[:4] // now 2 pages
	src.mu.Unlock()

	remaining, err := v.reload()
	if err != nil || !remaining {
		t.Fatalf("reload = %v, %v", remaining, err)
	}
	if v.page != 1 {
		t.Errorf("page = %d after shrink, want 1", v.page)
	}
}

func TestReloadEmptyIsTerminal(t *testing.T) {
	src := &fakeSource{}
	v := testView(makeEntries(2, func(int) bool { return true }), src)

	src.mu.Lock()
	src.entries = nil
	src.mu.Unlock()

	remaining, err := v.reload()
	if err != nil {
		t.Fatal(err)
	}
	if remaining {
		t.Error("reload reported remaining entries for an empty source")
	}
	if v.page != 0 {
		t.Errorf("page = %d, want 0", v.page)
	}

	term := v.TerminalEmbed()
	if !strings.Contains(term.Description, "All members have been untimed out.") {
		t.Errorf("terminal embed = %q", term.Description)
	}
	if term.Color != utils.ColorGreen {
		t.Errorf("terminal color = %#x", term.Color)
	}
}

func TestActAllCollectsPartialFailures(t *testing.T) {
	src := &fakeSource{
		failIDs:  map[string]bool{"u2": true, "u4": true},
		actDelay: 5 * time.Millisecond,
	}
	v := testView(makeEntries(5, func(int) bool { return true }), src)

	res := v.ActAll(&discordgo.User{ID: "mod1", Username: "mod"})

	if res.Succeeded != 3 {
		t.Errorf("Succeeded = %d, want 3", res.Succeeded)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("got %d failures, want 2", len(res.Failures))
	}
	// Failures keep list order regardless of completion order.
	if res.Failures[0].Entry.SubjectID != "u2" || res.Failures[1].Entry.SubjectID != "u4" {
		t.Errorf("failures = [%s %s], want [u2 u4]",
			res.Failures[0].Entry.SubjectID, res.Failures[1].Entry.SubjectID)
	}
	// Every entry is notified, even the failed ones.
	if len(src.notified) != 5 {
		t.Errorf("notified %d entries, want 5", len(src.notified))
	}
}

func TestActAllIgnoresAttribution(t *testing.T) {
	src := &fakeSource{}
	v := testView(makeEntries(4, func(int) bool { return false }), src)

	res := v.ActAll(&discordgo.User{ID: "mod1", Username: "mod"})
	if res.Succeeded != 4 || len(res.Failures) != 0 {
		t.Errorf("bulk skipped unattributed entries: %+v", res)
	}
}
