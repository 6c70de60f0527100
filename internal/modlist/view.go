package modlist

import (
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// View is one live paginated list message. All mutation goes through
// the registry, which serializes on v.mu; the math helpers are
// lock-free so tests can drive them directly.
type View struct {
	ID        string
	GuildID   string
	ChannelID string
	MessageID string

	src     Source
	perPage int

	mu      sync.Mutex
	entries []Entry
	page    int
	// expiry is the idle-teardown task ID. It is guarded by the
	// registry mutex, not v.mu: the registry owns view lifetime.
	expiry int64
}

func newView(id, guildID, channelID string, src Source, perPage int, entries []Entry) *View {
	return &View{
		ID:        id,
		GuildID:   guildID,
		ChannelID: channelID,
		src:       src,
		perPage:   perPage,
		entries:   entries,
	}
}

// lastPageIndex is the last valid page index: ceil(N/perPage)-1,
// floored at zero so an empty list still has page 0.
func lastPageIndex(n, perPage int) int {
	if n <= perPage {
		return 0
	}
	return (n + perPage - 1) / perPage - 1
}

func (v *View) MaxPage() int {
	return v.lastPage()
}

// pageEntries returns the slice of entries visible on the current
// page plus the global index of the first one (1-based).
func (v *View) pageEntries() ([]Entry, int) {
	start := v.page * v.perPage
	if start >= len(v.entries) {
		return nil, start + 1
	}
	end := start + v.perPage
	if end > len(v.entries) {
		end = len(v.entries)
	}
	return v.entries[start:end], start + 1
}

// Next advances a page and reports whether anything changed.
func (v *View) Next() bool {
	if v.page < v.lastPage() {
		v.page++
		return true
	}
	return false
}

func (v *View) Prev() bool {
	if v.page > 0 {
		v.page--
		return true
	}
	return false
}

func (v *View) lastPage() int {
	return lastPageIndex(len(v.entries), v.perPage)
}

// clampPage pulls the page index back into range after the entry set
// shrank underneath it.
func (v *View) clampPage() {
	if last := v.lastPage(); v.page > last {
		v.page = last
	}
}

// FindEntry looks up a subject in the current entry set.
func (v *View) FindEntry(subjectID string) (Entry, bool) {
	for _, e := range v.entries {
		if e.SubjectID == subjectID {
			return e, true
		}
	}
	return Entry{}, false
}

// Embed renders the current page.
func (v *View) Embed() *discordgo.MessageEmbed {
	entries, first := v.pageEntries()
	lines := make([]string, 0, len(entries))
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("`%d.` %s %s", first+i, e.Mention, e.Detail))
	}

	noun := "entries"
	if len(v.entries) == 1 {
		noun = "entry"
	}
	return &discordgo.MessageEmbed{
		Title:       v.src.Title(),
		Description: strings.Join(lines, "\n"),
		Color:       v.src.Color(),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d (%d %s)", v.page+1, v.lastPage()+1, len(v.entries), noun),
		},
	}
}

// Components builds the button rows for the current page: one
// secondary button per attributed entry, then navigation (only when
// there is more than one page) and the bulk button (whenever the list
// is non-empty, attribution or not).
func (v *View) Components() []discordgo.MessageComponent {
	entries, first := v.pageEntries()

	var actionButtons []discordgo.MessageComponent
	for i, e := range entries {
		if e.ModeratorID == "" {
			continue
		}
		actionButtons = append(actionButtons, discordgo.Button{
			Label:    fmt.Sprintf("%s %d", v.src.ActionLabel(), first+i),
			Style:    discordgo.SecondaryButton,
			CustomID: fmt.Sprintf("modlist:%s:act:%s", v.ID, e.SubjectID),
		})
	}

	var controls []discordgo.MessageComponent
	if v.lastPage() > 0 {
		controls = append(controls,
			discordgo.Button{
				Label:    "◀️ Prev",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("modlist:%s:prev", v.ID),
			},
			discordgo.Button{
				Label:    "Next ▶️",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("modlist:%s:next", v.ID),
			},
		)
	}
	if len(v.entries) > 0 {
		controls = append(controls, discordgo.Button{
			Label:    v.src.BulkLabel(),
			Style:    discordgo.DangerButton,
			CustomID: fmt.Sprintf("modlist:%s:all", v.ID),
		})
	}

	var rows []discordgo.MessageComponent
	for start := 0; start < len(actionButtons); start += 5 {
		end := start + 5
		if end > len(actionButtons) {
			end = len(actionButtons)
		}
		rows = append(rows, discordgo.ActionsRow{Components: actionButtons[start:end]})
	}
	if len(controls) > 0 {
		rows = append(rows, discordgo.ActionsRow{Components: controls})
	}
	return rows
}

// TerminalEmbed is the green all-clear shown when a refresh finds the
// list empty.
func (v *View) TerminalEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Description: utils.EmojiTick + " " + v.src.EmptyMessage(),
		Color:       utils.ColorGreen,
	}
}

// reload re-fetches authoritative state and clamps the page. Returns
// whether any entries remain.
func (v *View) reload() (bool, error) {
	entries, err := v.src.Fetch()
	if err != nil {
		return true, err
	}
	v.entries = entries
	v.clampPage()
	return len(entries) > 0, nil
}

// ActAll runs the bulk action over every entry concurrently, then the
// notifications. Per-entry failures are collected, not short-circuited:
// one refusal must not stop the rest of the sweep.
func (v *View) ActAll(actor *discordgo.User) BulkResult {
	entries := make([]Entry, len(v.entries))
	copy(entries, v.entries)

	errs := make([]error, len(entries))
	var g errgroup.Group
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			errs[i] = v.src.Act(e, actor, true)
			return nil
		})
	}
	g.Wait()

	var wg sync.WaitGroup
	for _, e := range entries {
		e := e
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.src.Notify(e, actor, true)
		}()
	}
	wg.Wait()

	res := BulkResult{}
	for i, err := range errs {
		if err != nil {
			res.Failures = append(res.Failures, BulkFailure{Entry: entries[i], Err: err})
		} else {
			res.Succeeded++
		}
	}
	return res
}
