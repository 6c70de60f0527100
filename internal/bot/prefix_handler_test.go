package bot

import (
	"reflect"
	"testing"
)

func TestParseInvocation(t *testing.T) {
	cases := []struct {
		content string
		name    string
		args    []string
		ok      bool
	}{
		{",timeout @user 10m spamming", "timeout", []string{"@user", "10m", "spamming"}, true},
		{",to @user", "timeout", []string{"@user"}, true},
		{",TL", "timeoutlist", nil, true},
		{",ula", "unlockall", nil, true},
		{",reveal", "unhideall", nil, true},
		{",unknowncmd", "", nil, false},
		{"no prefix here", "", nil, false},
		{",", "", nil, false},
	}
	for _, c := range cases {
		name, args, ok := parseInvocation(c.content, ",")
		if ok != c.ok || name != c.name {
			t.Errorf("parseInvocation(%q) = (%q, %v), want (%q, %v)", c.content, name, ok, c.name, c.ok)
			continue
		}
		if c.ok && len(c.args) > 0 && !reflect.DeepEqual(args, c.args) {
			t.Errorf("parseInvocation(%q) args = %v, want %v", c.content, args, c.args)
		}
	}
}

func TestParseInvocationCustomPrefix(t *testing.T) {
	name, _, ok := parseInvocation("!!ban @user", "!!")
	if !ok || name != "ban" {
		t.Fatalf("got (%q, %v)", name, ok)
	}
	if _, _, ok := parseInvocation(",ban @user", "!!"); ok {
		t.Fatal("default prefix should not match after a prefix change")
	}
}

func TestAliasesResolveToRealHandlers(t *testing.T) {
	for alias, canonicalName := range aliases {
		if _, ok := handlers[canonicalName]; !ok {
			t.Errorf("alias %q points at unknown command %q", alias, canonicalName)
		}
		if _, ok := handlers[alias]; ok {
			t.Errorf("alias %q shadows a canonical command name", alias)
		}
	}
}
