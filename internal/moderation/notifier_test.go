package moderation

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func testDM(action Action) DM {
	return DM{
		Guild:     &discordgo.Guild{ID: "g1", Name: "Test Guild", Icon: "abc"},
		Target:    &discordgo.User{ID: "u1", Username: "target"},
		Moderator: "mod",
		Action:    action,
	}
}

func TestBuildEmbedTimeoutHasDurationAndFooter(t *testing.T) {
	dm := testDM(ActionTimedOut)
	dm.Duration = "5 minutes"
	dm.Reason = "spam"

	e := BuildEmbed(dm)
	if e.Title != "Timed Out" {
		t.Errorf("title = %q", e.Title)
	}
	if !strings.Contains(e.Description, "Test Guild") {
		t.Errorf("description missing guild name: %q", e.Description)
	}
	if len(e.Fields) != 3 {
		t.Fatalf("got %d fields, want Moderator/Duration/Reason", len(e.Fields))
	}
	if e.Fields[1].Name != "Duration" || e.Fields[1].Value != "5 minutes" {
		t.Errorf("duration field = %+v", e.Fields[1])
	}
	if e.Fields[2].Value != "spam" {
		t.Errorf("reason field = %+v", e.Fields[2])
	}
	if e.Footer == nil {
		t.Error("punitive action missing dispute footer")
	}
}

func TestBuildEmbedDefaultReason(t *testing.T) {
	e := BuildEmbed(testDM(ActionBanned))
	last := e.Fields[len(e.Fields)-1]
	if last.Value != "No reason provided" {
		t.Errorf("reason = %q", last.Value)
	}
}

func TestBuildEmbedUntimeoutShape(t *testing.T) {
	e := BuildEmbed(testDM(ActionUntimeout))
	if e.Title != "Lifted Timeout" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Footer != nil {
		t.Error("untimeout carries dispute footer")
	}
	if e.Thumbnail == nil || !strings.Contains(e.Thumbnail.URL, "avatars") {
		t.Errorf("untimeout thumbnail should be the member avatar, got %+v", e.Thumbnail)
	}
}

func TestBuildEmbedKickedNoFooter(t *testing.T) {
	if e := BuildEmbed(testDM(ActionKicked)); e.Footer != nil {
		t.Error("kick carries dispute footer")
	}
	if e := BuildEmbed(testDM(ActionUnmuted)); e.Footer != nil {
		t.Error("unmute carries dispute footer")
	}
}
