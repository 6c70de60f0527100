package moderation

import "testing"

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"<@123456789>", "123456789", true},
		{"<@!123456789>", "123456789", true},
		{"123456789", "123456789", true},
		{"<@abc>", "", false},
		{"<@123", "", false},
		{"@someone", "", false},
		{"12a34", "", false},
		{"", "", false},
		{"<@>", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseID(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseID(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
