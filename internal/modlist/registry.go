package modlist

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/metrics"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// IdleTimeout tears a list view down after this long without a click.
const IdleTimeout = 180 * time.Second

// ErrEmpty is returned by Open when the source has nothing to list.
// The command decides how to word that.
var ErrEmpty = errors.New("modlist: no entries")

// Registry tracks live list views by ID and routes their component
// interactions. Custom IDs look like modlist:<viewID>:<verb>[:arg].
type Registry struct {
	mu    sync.Mutex
	views map[string]*View
	seq   atomic.Int64

	sched *scheduler.Registry
	log   *zap.Logger
}

func NewRegistry(sched *scheduler.Registry, log *zap.Logger) *Registry {
	return &Registry{
		views: make(map[string]*View),
		sched: sched,
		log:   log,
	}
}

// Open fetches the source, posts the list message, and registers the
// view for interaction routing.
func (r *Registry) Open(s *discordgo.Session, guildID, channelID string, src Source, perPage int) error {
	entries, err := src.Fetch()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return ErrEmpty
	}

	id := strconv.FormatInt(r.seq.Add(1), 10)
	v := newView(id, guildID, channelID, src, perPage, entries)

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{v.Embed()},
		Components: v.Components(),
	})
	if err != nil {
		return err
	}
	v.MessageID = msg.ID

	r.mu.Lock()
	r.views[id] = v
	v.expiry = r.sched.After("modlist-expire", IdleTimeout, func() {
		r.expire(s, id)
	})
	r.mu.Unlock()
	metrics.ActiveViews.Inc()
	return nil
}

// expire drops a view and strips its buttons, leaving the last embed
// in place.
func (r *Registry) expire(s *discordgo.Session, id string) {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()
	if !ok {
		return
	}
	metrics.ActiveViews.Dec()

	empty := []discordgo.MessageComponent{}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    v.ChannelID,
		ID:         v.MessageID,
		Components: &empty,
	}); err != nil {
		r.log.Debug("failed to strip expired list view", zap.Error(err))
	}
}

// remove drops a view that reached its terminal state.
func (r *Registry) remove(id string) {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	if ok {
		r.sched.Cancel(v.expiry)
	}
	r.mu.Unlock()
	if ok {
		metrics.ActiveViews.Dec()
	}
}

func (r *Registry) lookup(id string) *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.views[id]
}

// touch pushes the idle deadline back after an interaction. Holds the
// registry mutex so concurrent clicks cannot double-schedule and leak
// a live teardown timer.
func (r *Registry) touch(s *discordgo.Session, v *View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, live := r.views[v.ID]; !live {
		return
	}
	r.sched.Cancel(v.expiry)
	v.expiry = r.sched.After("modlist-expire", IdleTimeout, func() {
		r.expire(s, v.ID)
	})
}

// HandleComponent dispatches a modlist button click. customID has
// already been matched on the "modlist:" prefix.
func (r *Registry) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	parts := strings.Split(customID, ":")
	if len(parts) < 3 {
		return
	}
	viewID, verb := parts[1], parts[2]

	v := r.lookup(viewID)
	if v == nil {
		utils.SendError(s, i, "This list has expired. Run the command again.")
		return
	}
	r.touch(s, v)
	metrics.ComponentClicksTotal.WithLabelValues("modlist").Inc()

	v.mu.Lock()
	defer v.mu.Unlock()

	switch verb {
	case "prev":
		if v.Prev() {
			r.respondUpdate(s, i, v)
		} else {
			_ = utils.AckUpdate(s, i)
		}
	case "next":
		if v.Next() {
			r.respondUpdate(s, i, v)
		} else {
			_ = utils.AckUpdate(s, i)
		}
	case "act":
		if len(parts) < 4 {
			return
		}
		r.handleAct(s, i, v, parts[3])
	case "all":
		r.handleActAll(s, i, v)
	}
}

func (r *Registry) respondUpdate(s *discordgo.Session, i *discordgo.InteractionCreate, v *View) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{v.Embed()},
			Components: v.Components(),
		},
	})
	if err != nil {
		r.log.Debug("list view update failed", zap.Error(err))
	}
}

func (r *Registry) handleAct(s *discordgo.Session, i *discordgo.InteractionCreate, v *View, subjectID string) {
	if !moderation.HasPermission(s, v.GuildID, i.Member, v.src.Permission()) {
		utils.SendError(s, i, v.src.DenyMessage())
		return
	}

	entry, ok := v.FindEntry(subjectID)
	if !ok {
		utils.SendError(s, i, "User not found.")
		r.refreshLocked(s, v)
		return
	}

	actor := i.Member.User
	if err := v.src.Act(entry, actor, false); err != nil {
		utils.SendError(s, i, actErrorMessage(v.src, err))
		metrics.ModActionsTotal.WithLabelValues(v.src.Kind(), "error").Inc()
		return
	}
	metrics.ModActionsTotal.WithLabelValues(v.src.Kind(), "ok").Inc()
	v.src.Notify(entry, actor, false)
	utils.SendSuccess(s, i, fmt.Sprintf("%s applied to %s.", v.src.ActionLabel(), entry.Mention))

	r.refreshLocked(s, v)
}

// actErrorMessage words the private notice for a failed individual
// action, keeping forbidden, platform, and unexpected failures apart.
func actErrorMessage(src Source, err error) string {
	switch moderation.Classify(err) {
	case moderation.ClassForbidden:
		return fmt.Sprintf("I don't have permission to %s that user.", strings.ToLower(src.ActionLabel()))
	case moderation.ClassPlatform:
		return fmt.Sprintf("The platform rejected the request: %v", err)
	default:
		return fmt.Sprintf("An unexpected error occurred: %v", err)
	}
}

// failureReason is the short per-entry form used in bulk summaries.
func failureReason(err error) string {
	switch moderation.Classify(err) {
	case moderation.ClassForbidden:
		return "missing permissions"
	case moderation.ClassPlatform:
		return fmt.Sprintf("platform error: %v", err)
	default:
		return fmt.Sprintf("unexpected error: %v", err)
	}
}

func (r *Registry) handleActAll(s *discordgo.Session, i *discordgo.InteractionCreate, v *View) {
	if !moderation.HasPermission(s, v.GuildID, i.Member, v.src.Permission()) {
		utils.SendError(s, i, v.src.DenyMessage())
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		r.log.Debug("bulk defer failed", zap.Error(err))
		return
	}

	res := v.ActAll(i.Member.User)
	metrics.ModActionsTotal.WithLabelValues(v.src.Kind(), "ok").Add(float64(res.Succeeded))
	metrics.ModActionsTotal.WithLabelValues(v.src.Kind(), "error").Add(float64(len(res.Failures)))

	var sb strings.Builder
	if len(res.Failures) > 0 {
		fmt.Fprintf(&sb, "%s finished for %d members. The following errors occurred:\n", v.src.BulkLabel(), res.Succeeded)
		for _, f := range res.Failures {
			fmt.Fprintf(&sb, "Failed for %s: %s\n", f.Entry.Mention, failureReason(f.Err))
		}
	} else {
		fmt.Fprintf(&sb, "%s succeeded for all %d members.", v.src.BulkLabel(), res.Succeeded)
	}
	if _, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: sb.String(),
		Flags:   discordgo.MessageFlagsEphemeral,
	}); err != nil {
		r.log.Debug("bulk followup failed", zap.Error(err))
	}

	r.refreshLocked(s, v)
}

// refreshLocked re-queries the source and repaints or terminates the
// list message. Caller holds v.mu.
func (r *Registry) refreshLocked(s *discordgo.Session, v *View) {
	remaining, err := v.reload()
	if err != nil {
		r.log.Warn("list refresh failed", zap.String("kind", v.src.Kind()), zap.Error(err))
		return
	}

	if !remaining {
		empty := []discordgo.MessageComponent{}
		if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
			Channel:    v.ChannelID,
			ID:         v.MessageID,
			Embeds:     &[]*discordgo.MessageEmbed{v.TerminalEmbed()},
			Components: &empty,
		}); err != nil {
			r.log.Debug("terminal edit failed", zap.Error(err))
		}
		r.remove(v.ID)
		return
	}

	comps := v.Components()
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    v.ChannelID,
		ID:         v.MessageID,
		Embeds:     &[]*discordgo.MessageEmbed{v.Embed()},
		Components: &comps,
	}); err != nil {
		r.log.Debug("list repaint failed", zap.Error(err))
	}
}
