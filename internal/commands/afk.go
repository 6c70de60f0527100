package commands

import (
	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
)

// AFKCmd starts the global/server AFK choice flow. Slash invocations
// are rejected because the flow edits the invoking message.
func AFKCmd(ctx framework.Context, d *Deps) error {
	msg := ctx.GetMessage()
	if msg == nil {
		return ctx.ReplyEphemeral("Use the prefix form of this command, e.g. `,afk lunch`.")
	}
	reason := restOf(ctx.GetArgs(), 0)
	if reason == "" {
		reason = "AFK"
	}
	return d.AFK.Begin(ctx.GetSession(), msg, reason)
}
