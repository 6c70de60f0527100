package moderation

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
)

func restErr(status int) error {
	return &discordgo.RESTError{Response: &http.Response{StatusCode: status}}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"forbidden", restErr(http.StatusForbidden), ClassForbidden},
		{"wrapped forbidden", fmt.Errorf("untimeout: %w", restErr(http.StatusForbidden)), ClassForbidden},
		{"not found", restErr(http.StatusNotFound), ClassPlatform},
		{"server error", restErr(http.StatusInternalServerError), ClassPlatform},
		{"plain error", errors.New("dial tcp: timeout"), ClassUnexpected},
		{"nil response", &discordgo.RESTError{}, ClassPlatform},
	}
	for _, tt := range tests {
		if got := Classify(tt.err); got != tt.want {
			t.Errorf("%s: Classify = %v, want %v", tt.name, got, tt.want)
		}
	}
}
