package commands

import (
	"reflect"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func TestSplitQuoted(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{`"Pick a role" "🎉" "Members"`, []string{"Pick a role", "🎉", "Members"}},
		{`a b c`, []string{"a", "b", "c"}},
		{`"one arg"`, []string{"one arg"}},
		{`mixed "quoted span" tail`, []string{"mixed", "quoted span", "tail"}},
		{`""`, []string{""}},
	}
	for _, c := range cases {
		got, err := splitQuoted(c.in)
		if err != nil {
			t.Fatalf("splitQuoted(%q) error: %v", c.in, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitQuoted(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestSplitQuotedUnbalanced(t *testing.T) {
	if _, err := splitQuoted(`"open ended`); err == nil {
		t.Fatal("expected error for unbalanced quotes")
	}
}

func TestRestOf(t *testing.T) {
	args := []string{"user", "10m", "being", "rude"}
	if got := restOf(args, 2); got != "being rude" {
		t.Errorf("restOf = %q", got)
	}
	if got := restOf(args, 4); got != "" {
		t.Errorf("restOf past end = %q, want empty", got)
	}
}

func TestDisplayName(t *testing.T) {
	m := &discordgo.Member{
		Nick: "Nickname",
		User: &discordgo.User{Username: "someone", GlobalName: "Someone"},
	}
	if got := displayName(m); got != "Nickname" {
		t.Errorf("nick should win, got %q", got)
	}
	m.Nick = ""
	if got := displayName(m); got != "Someone" {
		t.Errorf("global name should win over username, got %q", got)
	}
	m.User.GlobalName = ""
	if got := displayName(m); got != "someone" {
		t.Errorf("username fallback, got %q", got)
	}
}

func TestUsageTableCoversRegisteredCommands(t *testing.T) {
	for _, cmd := range Commands {
		name := cmd.Name
		// Slash names that differ from the prefix canonical name.
		switch name {
		case "userinfo":
			name = "ui"
		case "avatar":
			name = "av"
		}
		if _, ok := usages[name]; !ok {
			t.Errorf("no usage entry for command %q", cmd.Name)
		}
	}
}
