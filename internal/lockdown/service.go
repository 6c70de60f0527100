// Package lockdown flips channel permission overwrites for the lock,
// hide, and hard-lock command families, and restores them afterwards.
package lockdown

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/neonflux-io/discord-admin-bot/internal/scheduler"
	"github.com/neonflux-io/discord-admin-bot/internal/state"
)

// HardLockPerms are the bits a hard lock denies for every role and
// every member with an overwrite.
const HardLockPerms = discordgo.PermissionSendMessages |
	discordgo.PermissionSendMessagesInThreads |
	discordgo.PermissionCreatePublicThreads |
	discordgo.PermissionCreatePrivateThreads

var (
	ErrAlreadyHard = errors.New("channel already has a hard action outstanding")
	ErrNotHard     = errors.New("channel has no saved overwrites to restore")
)

// bit modes for flipBits.
const (
	modeDeny  = iota // set the deny bit
	modeClear        // drop the bit from both sides
	modeAllow        // set the allow bit
)

// flipBits applies mode for perms to an (allow, deny) pair.
func flipBits(allow, deny, perms int64, mode int) (int64, int64) {
	switch mode {
	case modeDeny:
		return allow &^ perms, deny | perms
	case modeClear:
		return allow &^ perms, deny &^ perms
	default:
		return allow | perms, deny &^ perms
	}
}

// Service performs the overwrite edits. The tracked channel sets and
// hard-action snapshots live in the shared state store.
type Service struct {
	State *state.Store
	Sched *scheduler.Registry
	Log   *zap.Logger
}

func findOverwrite(ch *discordgo.Channel, targetID string) *discordgo.PermissionOverwrite {
	for _, ow := range ch.PermissionOverwrites {
		if ow.ID == targetID {
			return ow
		}
	}
	return nil
}

// setBits edits one target's overwrite on a channel. An overwrite left
// with no bits on either side is deleted rather than kept empty.
func (l *Service) setBits(s *discordgo.Session, ch *discordgo.Channel, targetID string,
	ttype discordgo.PermissionOverwriteType, perms int64, mode int) error {

	var allow, deny int64
	if ow := findOverwrite(ch, targetID); ow != nil {
		allow, deny = ow.Allow, ow.Deny
	}
	newAllow, newDeny := flipBits(allow, deny, perms, mode)
	if newAllow == allow && newDeny == deny {
		return nil
	}
	if newAllow == 0 && newDeny == 0 {
		return s.ChannelPermissionDelete(ch.ID, targetID)
	}
	return s.ChannelPermissionSet(ch.ID, targetID, ttype, newAllow, newDeny)
}

// everyoneRoleID is the guild ID by convention.
func everyoneRoleID(guildID string) string { return guildID }

// Lock denies SendMessages for @everyone in one channel. A positive
// duration schedules the matching unlock.
func (l *Service) Lock(s *discordgo.Session, guildID, channelID string, d time.Duration) error {
	ch, err := s.Channel(channelID)
	if err != nil {
		return err
	}
	if err := l.setBits(s, ch, everyoneRoleID(guildID),
		discordgo.PermissionOverwriteTypeRole, discordgo.PermissionSendMessages, modeDeny); err != nil {
		return err
	}
	l.State.Locked.Add(channelID)

	if d > 0 {
		l.Sched.After("auto-unlock", d, func() {
			if err := l.Unlock(s, guildID, channelID); err != nil {
				l.Log.Warn("timed unlock failed",
					zap.String("channel", channelID), zap.Error(err))
			}
		})
	}
	return nil
}

// Unlock grants SendMessages back to @everyone in one channel.
func (l *Service) Unlock(s *discordgo.Session, guildID, channelID string) error {
	ch, err := s.Channel(channelID)
	if err != nil {
		return err
	}
	if err := l.setBits(s, ch, everyoneRoleID(guildID),
		discordgo.PermissionOverwriteTypeRole, discordgo.PermissionSendMessages, modeAllow); err != nil {
		return err
	}
	l.State.Locked.Remove(channelID)
	return nil
}

// Hide denies ViewChannel for @everyone in one channel.
func (l *Service) Hide(s *discordgo.Session, guildID, channelID string, d time.Duration) error {
	ch, err := s.Channel(channelID)
	if err != nil {
		return err
	}
	if err := l.setBits(s, ch, everyoneRoleID(guildID),
		discordgo.PermissionOverwriteTypeRole, discordgo.PermissionViewChannel, modeDeny); err != nil {
		return err
	}
	l.State.Hidden.Add(channelID)

	if d > 0 {
		l.Sched.After("auto-unhide", d, func() {
			if err := l.Unhide(s, guildID, channelID); err != nil {
				l.Log.Warn("timed unhide failed",
					zap.String("channel", channelID), zap.Error(err))
			}
		})
	}
	return nil
}

func (l *Service) Unhide(s *discordgo.Session, guildID, channelID string) error {
	ch, err := s.Channel(channelID)
	if err != nil {
		return err
	}
	if err := l.setBits(s, ch, everyoneRoleID(guildID),
		discordgo.PermissionOverwriteTypeRole, discordgo.PermissionViewChannel, modeAllow); err != nil {
		return err
	}
	l.State.Hidden.Remove(channelID)
	return nil
}

// guildTargets is @everyone plus every role, the target set the *all
// variants sweep.
func guildTargets(s *discordgo.Session, guildID string) ([]string, error) {
	roles, err := s.GuildRoles(guildID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(roles))
	for _, r := range roles {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

func textChannels(s *discordgo.Session, guildID string) ([]*discordgo.Channel, error) {
	chans, err := s.GuildChannels(guildID)
	if err != nil {
		return nil, err
	}
	var out []*discordgo.Channel
	for _, ch := range chans {
		if ch.Type == discordgo.ChannelTypeGuildText {
			out = append(out, ch)
		}
	}
	return out, nil
}

// sweepAll applies mode for perms across every text channel and every
// role, updating the tracked set. onlyTracked limits the sweep to
// channels the matching lock/hide recorded.
func (l *Service) sweepAll(s *discordgo.Session, guildID string, perms int64, mode int,
	tracked *state.ChannelSet, track bool) error {

	channels, err := textChannels(s, guildID)
	if err != nil {
		return err
	}
	targets, err := guildTargets(s, guildID)
	if err != nil {
		return err
	}

	for _, ch := range channels {
		if !track && !tracked.Has(ch.ID) {
			continue
		}
		for _, target := range targets {
			if err := l.setBits(s, ch, target,
				discordgo.PermissionOverwriteTypeRole, perms, mode); err != nil {
				l.Log.Warn("overwrite sweep failed",
					zap.String("channel", ch.ID), zap.String("target", target), zap.Error(err))
			}
		}
		if track {
			tracked.Add(ch.ID)
		} else {
			tracked.Remove(ch.ID)
		}
	}
	return nil
}

// LockAll denies SendMessages across the guild. A positive duration
// schedules the sweep back.
func (l *Service) LockAll(s *discordgo.Session, guildID string, d time.Duration) error {
	if err := l.sweepAll(s, guildID, discordgo.PermissionSendMessages, modeDeny, l.State.Locked, true); err != nil {
		return err
	}
	if d > 0 {
		l.Sched.After("auto-unlock-all", d, func() {
			if err := l.UnlockAll(s, guildID); err != nil {
				l.Log.Warn("timed unlockall failed", zap.String("guild", guildID), zap.Error(err))
			}
		})
	}
	return nil
}

// UnlockAll reverts only the channels LockAll recorded, clearing the
// deny bit back to neutral.
func (l *Service) UnlockAll(s *discordgo.Session, guildID string) error {
	return l.sweepAll(s, guildID, discordgo.PermissionSendMessages, modeClear, l.State.Locked, false)
}

func (l *Service) HideAll(s *discordgo.Session, guildID string, d time.Duration) error {
	if err := l.sweepAll(s, guildID, discordgo.PermissionViewChannel, modeDeny, l.State.Hidden, true); err != nil {
		return err
	}
	if d > 0 {
		l.Sched.After("auto-unhide-all", d, func() {
			if err := l.UnhideAll(s, guildID); err != nil {
				l.Log.Warn("timed unhideall failed", zap.String("guild", guildID), zap.Error(err))
			}
		})
	}
	return nil
}

func (l *Service) UnhideAll(s *discordgo.Session, guildID string) error {
	return l.sweepAll(s, guildID, discordgo.PermissionViewChannel, modeClear, l.State.Hidden, false)
}

// hardApply snapshots the channel's overwrites for every role and for
// every member with an existing overwrite, then denies perms for all
// of them. Refused while a previous snapshot is outstanding.
func (l *Service) hardApply(s *discordgo.Session, guildID, channelID string,
	store *state.SnapshotStore, perms int64) error {

	if store.Has(channelID) {
		return ErrAlreadyHard
	}

	ch, err := s.Channel(channelID)
	if err != nil {
		return err
	}
	targets, err := guildTargets(s, guildID)
	if err != nil {
		return err
	}

	snap := state.Snapshot{}
	for _, roleID := range targets {
		ow := findOverwrite(ch, roleID)
		saved := state.Overwrite{TargetID: roleID, Type: discordgo.PermissionOverwriteTypeRole}
		if ow != nil {
			saved.Allow, saved.Deny, saved.Existed = ow.Allow, ow.Deny, true
		}
		snap[roleID] = saved
	}
	for _, ow := range ch.PermissionOverwrites {
		if ow.Type != discordgo.PermissionOverwriteTypeMember {
			continue
		}
		snap[ow.ID] = state.Overwrite{
			TargetID: ow.ID,
			Type:     discordgo.PermissionOverwriteTypeMember,
			Allow:    ow.Allow,
			Deny:     ow.Deny,
			Existed:  true,
		}
	}

	if !store.Put(channelID, snap) {
		return ErrAlreadyHard
	}

	for _, saved := range snap {
		if err := l.setBits(s, ch, saved.TargetID, saved.Type, perms, modeDeny); err != nil {
			l.Log.Warn("hard action overwrite failed",
				zap.String("channel", channelID), zap.String("target", saved.TargetID), zap.Error(err))
		}
	}
	return nil
}

// hardRestore puts back the saved overwrites verbatim and drops the
// snapshot.
func (l *Service) hardRestore(s *discordgo.Session, channelID string, store *state.SnapshotStore) (int, error) {
	snap, ok := store.Take(channelID)
	if !ok {
		return 0, ErrNotHard
	}

	restored := 0
	for _, saved := range snap {
		var err error
		if !saved.Existed {
			err = s.ChannelPermissionDelete(channelID, saved.TargetID)
		} else {
			err = s.ChannelPermissionSet(channelID, saved.TargetID, saved.Type, saved.Allow, saved.Deny)
		}
		if err != nil {
			l.Log.Warn("hard restore failed",
				zap.String("channel", channelID), zap.String("target", saved.TargetID), zap.Error(err))
			continue
		}
		restored++
	}
	return restored, nil
}

func (l *Service) HardLock(s *discordgo.Session, guildID, channelID string) error {
	return l.hardApply(s, guildID, channelID, l.State.HardLock, HardLockPerms)
}

func (l *Service) UnhardLock(s *discordgo.Session, channelID string) (int, error) {
	return l.hardRestore(s, channelID, l.State.HardLock)
}

func (l *Service) HardHide(s *discordgo.Session, guildID, channelID string) error {
	return l.hardApply(s, guildID, channelID, l.State.HardHide, discordgo.PermissionViewChannel)
}

func (l *Service) UnhardHide(s *discordgo.Session, channelID string) (int, error) {
	return l.hardRestore(s, channelID, l.State.HardHide)
}

// UnlockCategoryVoice clears Connect denials on every voice channel in
// a category. Returns how many overwrites changed.
func (l *Service) UnlockCategoryVoice(s *discordgo.Session, guildID, categoryID string) (int, error) {
	chans, err := s.GuildChannels(guildID)
	if err != nil {
		return 0, err
	}
	targets, err := guildTargets(s, guildID)
	if err != nil {
		return 0, err
	}

	var voice []*discordgo.Channel
	for _, ch := range chans {
		if ch.Type == discordgo.ChannelTypeGuildVoice && ch.ParentID == categoryID {
			voice = append(voice, ch)
		}
	}
	if len(voice) == 0 {
		return 0, fmt.Errorf("no voice channels found in the specified category")
	}

	changed := 0
	for _, ch := range voice {
		for _, target := range targets {
			ow := findOverwrite(ch, target)
			if ow == nil || ow.Deny&discordgo.PermissionVoiceConnect == 0 {
				continue
			}
			if err := l.setBits(s, ch, target,
				discordgo.PermissionOverwriteTypeRole, discordgo.PermissionVoiceConnect, modeClear); err != nil {
				l.Log.Warn("category unlock failed",
					zap.String("channel", ch.ID), zap.String("target", target), zap.Error(err))
				continue
			}
			changed++
		}
	}
	return changed, nil
}
