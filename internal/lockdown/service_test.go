package lockdown

import (
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestFlipBits(t *testing.T) {
	const send = discordgo.PermissionSendMessages
	const view = discordgo.PermissionViewChannel

	tests := []struct {
		name                 string
		allow, deny          int64
		perms                int64
		mode                 int
		wantAllow, wantDeny  int64
	}{
		{"deny from neutral", 0, 0, send, modeDeny, 0, send},
		{"deny clears allow", send, 0, send, modeDeny, 0, send},
		{"deny keeps other bits", view, 0, send, modeDeny, view, send},
		{"clear denied bit", 0, send, send, modeClear, 0, 0},
		{"clear keeps other denies", 0, send | view, send, modeClear, 0, view},
		{"allow from denied", 0, send, send, modeAllow, send, 0},
		{"allow from neutral", 0, 0, send, modeAllow, send, 0},
		{"multi-bit deny", 0, 0, HardLockPerms, modeDeny, 0, HardLockPerms},
	}
	for _, tt := range tests {
		gotAllow, gotDeny := flipBits(tt.allow, tt.deny, tt.perms, tt.mode)
		if gotAllow != tt.wantAllow || gotDeny != tt.wantDeny {
			t.Errorf("%s: flipBits = (%#x, %#x), want (%#x, %#x)",
				tt.name, gotAllow, gotDeny, tt.wantAllow, tt.wantDeny)
		}
	}
}

func TestFindOverwrite(t *testing.T) {
	ch := &discordgo.Channel{
		PermissionOverwrites: []*discordgo.PermissionOverwrite{
			{ID: "r1", Type: discordgo.PermissionOverwriteTypeRole, Deny: 1},
			{ID: "m1", Type: discordgo.PermissionOverwriteTypeMember, Allow: 2},
		},
	}
	if ow := findOverwrite(ch, "m1"); ow == nil || ow.Allow != 2 {
		t.Errorf("findOverwrite(m1) = %+v", ow)
	}
	if ow := findOverwrite(ch, "absent"); ow != nil {
		t.Errorf("findOverwrite(absent) = %+v, want nil", ow)
	}
}

func TestHardLockPermsCoverThreads(t *testing.T) {
	for _, bit := range []int64{
		discordgo.PermissionSendMessages,
		discordgo.PermissionSendMessagesInThreads,
		discordgo.PermissionCreatePublicThreads,
		discordgo.PermissionCreatePrivateThreads,
	} {
		if HardLockPerms&bit == 0 {
			t.Errorf("HardLockPerms missing bit %#x", bit)
		}
	}
	if HardLockPerms&discordgo.PermissionViewChannel != 0 {
		t.Error("hard lock must not touch ViewChannel")
	}
}
