// Package modlist implements the interactive moderation list views:
// paginated embeds whose buttons act on the listed members (untimeout,
// unban) individually or in bulk.
package modlist

import (
	"github.com/bwmarrin/discordgo"
)

// Entry is one row of a list. Detail is the rendered text after the
// mention, attribution phrase included. ModeratorID is empty when the
// action was taken outside the bot; such rows render "manually" and
// get no per-entry button.
type Entry struct {
	SubjectID   string
	Mention     string
	Detail      string
	ModeratorID string
}

// Source supplies a view with entries and performs the revert action.
// Fetch must return authoritative current state: it is called on every
// refresh, never cached.
type Source interface {
	Kind() string
	Title() string
	Color() int

	// Permission gates both the per-entry and bulk buttons, checked
	// at click time against the clicking member.
	Permission() int64
	DenyMessage() string

	// EmptyMessage is the terminal text shown when a refresh finds
	// nothing left.
	EmptyMessage() string

	ActionLabel() string // per-entry button text, e.g. "Untimeout"
	BulkLabel() string   // bulk button text, e.g. "Untimeout All"

	Fetch() ([]Entry, error)
	Act(e Entry, actor *discordgo.User, bulk bool) error
	Notify(e Entry, actor *discordgo.User, bulk bool)
}

// BulkFailure records one failed action from a bulk run.
type BulkFailure struct {
	Entry Entry
	Err   error
}

// BulkResult summarizes a bulk action: how many succeeded and which
// entries failed. Failures keep list order.
type BulkResult struct {
	Succeeded int
	Failures  []BulkFailure
}
