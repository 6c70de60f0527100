package modlist

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/metrics"
	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

const (
	// PagerPerPage is the page size for plain informational pagers.
	PagerPerPage = 10
	// PagerIdleTimeout is shorter than the action lists': nothing is
	// lost when a read-only pager goes stale.
	PagerIdleTimeout = 60 * time.Second
)

// Pager is a read-only paginated embed. The lines are fixed at open
// time, already formatted with their global index.
type Pager struct {
	ID        string
	ChannelID string
	MessageID string
	Title     string
	Field     string

	mu    sync.Mutex
	lines []string
	page  int

	// expiry is guarded by the registry mutex, like the action
	// lists' idle timers.
	expiry int64
}

func (p *Pager) lastPage() int {
	return lastPageIndex(len(p.lines), PagerPerPage)
}

func (p *Pager) pageLines() []string {
	start := p.page * PagerPerPage
	if start >= len(p.lines) {
		return nil
	}
	end := start + PagerPerPage
	if end > len(p.lines) {
		end = len(p.lines)
	}
	return p.lines[start:end]
}

func (p *Pager) Embed() *discordgo.MessageEmbed {
	lines := p.pageLines()
	value := "No entries."
	if len(lines) > 0 {
		value = strings.Join(lines, "\n")
	}
	noun := "entries"
	if len(p.lines) == 1 {
		noun = "entry"
	}
	return &discordgo.MessageEmbed{
		Title: p.Title,
		Color: utils.ColorNeutral,
		Fields: []*discordgo.MessageEmbedField{
			{Name: p.Field, Value: value},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d/%d (%d %s)", p.page+1, p.lastPage()+1, len(p.lines), noun),
		},
	}
}

func (p *Pager) Components() []discordgo.MessageComponent {
	if p.lastPage() == 0 {
		return nil
	}
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "◀️ Prev",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("pager:%s:prev", p.ID),
			},
			discordgo.Button{
				Label:    "Next ▶️",
				Style:    discordgo.PrimaryButton,
				CustomID: fmt.Sprintf("pager:%s:next", p.ID),
			},
		}},
	}
}

// PagerRegistry tracks live pagers, analogous to Registry but without
// the action machinery.
type PagerRegistry struct {
	mu     sync.Mutex
	pagers map[string]*Pager
	seq    int64

	sched *scheduler.Registry
	log   *zap.Logger
}

func NewPagerRegistry(sched *scheduler.Registry, log *zap.Logger) *PagerRegistry {
	return &PagerRegistry{
		pagers: make(map[string]*Pager),
		sched:  sched,
		log:    log,
	}
}

// Open posts a pager message. Empty line sets are allowed: the embed
// shows "No entries." with no buttons.
func (r *PagerRegistry) Open(s *discordgo.Session, channelID, title, field string, lines []string) error {
	r.mu.Lock()
	r.seq++
	id := strconv.FormatInt(r.seq, 10)
	r.mu.Unlock()

	p := &Pager{ID: id, ChannelID: channelID, Title: title, Field: field, lines: lines}

	msg, err := s.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{p.Embed()},
		Components: p.Components(),
	})
	if err != nil {
		return err
	}
	p.MessageID = msg.ID

	if p.lastPage() == 0 {
		return nil // static embed, nothing to route
	}

	r.mu.Lock()
	r.pagers[id] = p
	p.expiry = r.sched.After("pager-expire", PagerIdleTimeout, func() {
		r.expire(s, id)
	})
	r.mu.Unlock()
	return nil
}

func (r *PagerRegistry) expire(s *discordgo.Session, id string) {
	r.mu.Lock()
	p, ok := r.pagers[id]
	delete(r.pagers, id)
	r.mu.Unlock()
	if !ok {
		return
	}

	empty := []discordgo.MessageComponent{}
	if _, err := s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel:    p.ChannelID,
		ID:         p.MessageID,
		Components: &empty,
	}); err != nil {
		r.log.Debug("failed to strip expired pager", zap.Error(err))
	}
}

// HandleComponent routes a pager:<id>:<prev|next> click.
func (r *PagerRegistry) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate, customID string) {
	parts := strings.Split(customID, ":")
	if len(parts) != 3 {
		return
	}

	r.mu.Lock()
	p := r.pagers[parts[1]]
	if p != nil {
		r.sched.Cancel(p.expiry)
		p.expiry = r.sched.After("pager-expire", PagerIdleTimeout, func() {
			r.expire(s, p.ID)
		})
	}
	r.mu.Unlock()
	if p == nil {
		utils.SendError(s, i, "This list has expired. Run the command again.")
		return
	}
	metrics.ComponentClicksTotal.WithLabelValues("pager").Inc()

	p.mu.Lock()
	defer p.mu.Unlock()

	moved := false
	switch parts[2] {
	case "prev":
		if p.page > 0 {
			p.page--
			moved = true
		}
	case "next":
		if p.page < p.lastPage() {
			p.page++
			moved = true
		}
	}
	if !moved {
		_ = utils.AckUpdate(s, i)
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{p.Embed()},
			Components: p.Components(),
		},
	}); err != nil {
		r.log.Debug("pager update failed", zap.Error(err))
	}
}
