package moderation

import (
	"errors"
	"net/http"

	"github.com/bwmarrin/discordgo"
)

// ErrorClass buckets a failed platform call for user-facing feedback.
type ErrorClass int

const (
	// ClassForbidden is a 403: the bot lacks permission or role
	// position to act on the target.
	ClassForbidden ErrorClass = iota
	// ClassPlatform is any other REST error the platform returned.
	ClassPlatform
	// ClassUnexpected is everything else: transport failures, bugs.
	ClassUnexpected
)

// Classify inspects err for a discordgo REST error and buckets it.
func Classify(err error) ErrorClass {
	var rest *discordgo.RESTError
	if errors.As(err, &rest) {
		if rest.Response != nil && rest.Response.StatusCode == http.StatusForbidden {
			return ClassForbidden
		}
		return ClassPlatform
	}
	return ClassUnexpected
}
