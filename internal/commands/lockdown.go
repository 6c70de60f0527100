package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/lockdown"
	"github.com/neonflux-io/discord-admin-bot/internal/moderation"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// parseLockDuration accepts both the compact and long duration
// grammars for timed lockdowns.
func parseLockDuration(arg string) (time.Duration, bool) {
	if d, ok := moderation.ParseCompact(arg); ok && d > 0 {
		return d, true
	}
	return moderation.ParseFlexible(arg)
}

func optionalDuration(args []string) time.Duration {
	if len(args) == 0 {
		return 0
	}
	if d, ok := parseLockDuration(args[0]); ok {
		return d
	}
	return 0
}

func LockCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "lock", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	dur := optionalDuration(ctx.GetArgs())
	if err := d.Lockdown.Lock(ctx.GetSession(), ctx.GetGuildID(), ctx.GetChannelID(), dur); err != nil {
		return BotForbidden("lock")
	}
	return ctx.React(utils.EmojiLock)
}

func UnlockCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unlock", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	if err := d.Lockdown.Unlock(ctx.GetSession(), ctx.GetGuildID(), ctx.GetChannelID()); err != nil {
		return BotForbidden("unlock")
	}
	return ctx.React(utils.EmojiUnlock)
}

// HideCmd hides the current channel, or every text channel when the
// first argument is "all". Both forms take an optional duration.
func HideCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "hide", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) > 0 && equalsAll(args[0]) {
		dur := optionalDuration(args[1:])
		if err := d.Lockdown.HideAll(ctx.GetSession(), ctx.GetGuildID(), dur); err != nil {
			return BotForbidden("hide")
		}
		return ctx.React("🙈")
	}
	dur := optionalDuration(args)
	if err := d.Lockdown.Hide(ctx.GetSession(), ctx.GetGuildID(), ctx.GetChannelID(), dur); err != nil {
		return BotForbidden("hide")
	}
	return ctx.React("🙈")
}

func UnhideCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unhide", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) > 0 && equalsAll(args[0]) {
		if err := d.Lockdown.UnhideAll(ctx.GetSession(), ctx.GetGuildID()); err != nil {
			return BotForbidden("unhide")
		}
		return ctx.React("🙉")
	}
	if err := d.Lockdown.Unhide(ctx.GetSession(), ctx.GetGuildID(), ctx.GetChannelID()); err != nil {
		return BotForbidden("unhide")
	}
	return ctx.React("🙉")
}

func LockAllCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "lockall", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	args := ctx.GetArgs()
	var dur time.Duration
	if len(args) > 0 {
		dur = optionalDuration(args[len(args)-1:])
	}
	if err := d.Lockdown.LockAll(ctx.GetSession(), ctx.GetGuildID(), dur); err != nil {
		return BotForbidden("lockall")
	}
	return ctx.React(utils.EmojiLock)
}

func UnlockAllCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unlockall", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	if err := d.Lockdown.UnlockAll(ctx.GetSession(), ctx.GetGuildID()); err != nil {
		return BotForbidden("unlockall")
	}
	return ctx.React(utils.EmojiUnlock)
}

func HideAllCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "hideall", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	dur := optionalDuration(ctx.GetArgs())
	if err := d.Lockdown.HideAll(ctx.GetSession(), ctx.GetGuildID(), dur); err != nil {
		return BotForbidden("hideall")
	}
	return ctx.React("🙈")
}

func UnhideAllCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unhideall", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	if err := d.Lockdown.UnhideAll(ctx.GetSession(), ctx.GetGuildID()); err != nil {
		return BotForbidden("unhideall")
	}
	return ctx.React("🙉")
}

func HardLockCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "hardlock", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	err := d.Lockdown.HardLock(ctx.GetSession(), ctx.GetGuildID(), ctx.GetChannelID())
	if errors.Is(err, lockdown.ErrAlreadyHard) {
		return warn(ctx, "This channel is already hardlocked. Run unhardlock first.")
	}
	if err != nil {
		return BotForbidden("hardlock")
	}
	return ctx.React(utils.EmojiLock)
}

func UnhardLockCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unhardlock", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	_, err := d.Lockdown.UnhardLock(ctx.GetSession(), ctx.GetChannelID())
	if errors.Is(err, lockdown.ErrNotHard) {
		_, err := ctx.Reply("🔓 This channel hasn't been hardlocked before.")
		return err
	}
	if err != nil {
		return BotForbidden("unhardlock")
	}
	return ctx.React(utils.EmojiUnlock)
}

func HardHideCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "hardhide", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	err := d.Lockdown.HardHide(ctx.GetSession(), ctx.GetGuildID(), ctx.GetChannelID())
	if errors.Is(err, lockdown.ErrAlreadyHard) {
		return warn(ctx, "This channel is already hardhidden. Run unhardhide first.")
	}
	if err != nil {
		return BotForbidden("hardhide")
	}
	return ctx.React("🙈")
}

func UnhardHideCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "unhardhide", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	_, err := d.Lockdown.UnhardHide(ctx.GetSession(), ctx.GetChannelID())
	if errors.Is(err, lockdown.ErrNotHard) {
		_, err := ctx.Reply("🙉 This channel hasn't been hardhidden before.")
		return err
	}
	if err != nil {
		return BotForbidden("unhardhide")
	}
	return ctx.React("🙉")
}

// UnlockCategoryCmd clears Connect denials on every voice channel in
// a category.
func UnlockCategoryCmd(ctx framework.Context, d *Deps) error {
	if err := requirePerm(ctx, "uac", discordgo.PermissionManageChannels); err != nil {
		return err
	}
	args := ctx.GetArgs()
	if len(args) < 1 {
		return MissingArg("uac")
	}
	s := ctx.GetSession()

	categoryID, ok := moderation.ParseID(args[0])
	if !ok {
		return warn(ctx, "Invalid category ID. Please provide a valid number.")
	}
	category, err := s.Channel(categoryID)
	if err != nil || category == nil || category.Type != discordgo.ChannelTypeGuildCategory {
		return warn(ctx, "Could not find the specified category.")
	}

	count, err := d.Lockdown.UnlockCategoryVoice(s, ctx.GetGuildID(), categoryID)
	if err != nil {
		return warn(ctx, "No voice channels found in the specified category.")
	}
	return notice(ctx, fmt.Sprintf("%s Successfully unlocked %d voice channels in %s.", utils.EmojiTick, count, category.Name))
}

func equalsAll(arg string) bool {
	return strings.EqualFold(arg, "all")
}
