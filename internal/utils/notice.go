package utils

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Notice builds the bot's standard embed. Construct one, chain the
// setters, call Build. The zero value renders a neutral dark embed
// with a timestamp.
type Notice struct {
	title  string
	body   string
	color  int
	footer string
	thumb  string
}

func NewNotice() *Notice {
	return &Notice{color: ColorNeutral}
}

func (n *Notice) Title(t string) *Notice {
	n.title = t
	return n
}

func (n *Notice) Body(b string) *Notice {
	n.body = b
	return n
}

func (n *Notice) Color(c int) *Notice {
	n.color = c
	return n
}

func (n *Notice) Footer(f string) *Notice {
	n.footer = f
	return n
}

func (n *Notice) Thumbnail(url string) *Notice {
	n.thumb = url
	return n
}

func (n *Notice) Success() *Notice {
	n.color = ColorGreen
	return n
}

func (n *Notice) Error() *Notice {
	n.color = ColorRed
	return n
}

func (n *Notice) Build() *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       n.title,
		Description: n.body,
		Color:       n.color,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if n.footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: n.footer}
	}
	if n.thumb != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: n.thumb}
	}
	return e
}
