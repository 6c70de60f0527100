package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/neonflux-io/discord-admin-bot/internal/commands/framework"
	"github.com/neonflux-io/discord-admin-bot/internal/utils"
)

// UsageError makes a command invocation fail with a styled help embed
// instead of a plain error message.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

func MissingArg(command string) *UsageError {
	return &UsageError{Command: command, Reason: "You are missing a required argument."}
}

func BadArg(command string) *UsageError {
	return &UsageError{Command: command, Reason: "One or more arguments are invalid."}
}

func NoPermission(command string) *UsageError {
	return &UsageError{Command: command, Reason: "You do not have permission to use this command."}
}

func BotForbidden(command string) *UsageError {
	return &UsageError{
		Command: command,
		Reason:  "I do not have the required permissions to perform this action. Please check my role and channel permissions.",
	}
}

type usage struct {
	syntax  string
	example string
}

var usages = map[string]usage{
	"purge":        {",purge (amount) (@user)", ",c 25"},
	"ban":          {",ban <user> (reason...)", ",b @user spamming"},
	"unban":        {",unban <user> (reason...)", ",ub 123456789012345678"},
	"unbanall":     {",unbanall", ",uba"},
	"kick":         {",kick <user> (reason...)", ",k @user"},
	"timeout":      {",timeout <user> (duration) (reason...)", ",to @user 10m spamming"},
	"untimeout":    {",untimeout <user>", ",uto @user"},
	"untimeoutall": {",untimeoutall", ",uta"},
	"timeoutlist":  {",timeoutlist", ",tl"},
	"banlist":      {",banlist", ",bl"},
	"mute":         {",mute <user> (reason...)", ",m @user"},
	"imute":        {",imute <user> (reason...)", ",im @user"},
	"rmute":        {",rmute <user> (reason...)", ",rm @user"},
	"unmute":       {",unmute <user> (reason...)", ",unmute @user"},
	"lock":         {",lock (duration)", ",l 10m"},
	"unlock":       {",unlock", ",ul"},
	"lockall":      {",lockall (duration)", ",lockall 1h"},
	"unlockall":    {",unlockall", ",ula"},
	"hide":         {",hide (duration)", ",h 10m"},
	"unhide":       {",unhide", ",uh"},
	"hideall":      {",hideall (duration)", ",hall"},
	"unhideall":    {",unhideall", ",uhall"},
	"hardlock":     {",hardlock", ",hl"},
	"unhardlock":   {",unhardlock", ",uhl"},
	"hardhide":     {",hardhide", ",hh"},
	"unhardhide":   {",unhardhide", ",unhh"},
	"uac":          {",uac <category>", ",uac 123456789012345678"},
	"prefix":       {",prefix (new_prefix)", ",prefix !"},
	"afk":          {",afk (reason...)", ",afk lunch"},
	"inrole":       {",inrole <role>", ",inrole @Members"},
	"av":           {",av (@user)", ",pfp @user"},
	"ui":           {",ui (@user)", ",whois @user"},
	"serverinfo":   {",serverinfo", ",si"},
	"mc":           {",mc", ",mc"},
	"ping":         {",ping", ",ping"},
	"sr":           {",sr <add|remove|list> (args...)", `,sr add "Pick a role" "🎉" "Members"`},
	"gw":           {",gw <start|list> (args...)", ",gw start 30m Nitro Code"},
	"help":         {",help", ",help"},
}

// HelpEmbed renders the styled error embed shown when a command fails
// or is misused.
func HelpEmbed(s *discordgo.Session, command, description string) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       "Command: " + command,
		Description: description,
		Color:       utils.ColorNeutral,
	}
	if s.State != nil && s.State.User != nil {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    s.State.User.Username + " help",
			IconURL: s.State.User.AvatarURL(""),
		}
	}
	if u, ok := usages[command]; ok {
		embed.Fields = []*discordgo.MessageEmbedField{
			{
				Name:  "​",
				Value: fmt.Sprintf("```Syntax: %s\nExample: %s```", u.syntax, u.example),
			},
		}
	}
	return embed
}

// RespondError maps a command error onto the help embed. Usage errors
// carry their own command name and reason; anything else is reported
// verbatim.
func RespondError(ctx framework.Context, command string, err error) {
	description := fmt.Sprintf("An error occurred: %v", err)
	if ue, ok := err.(*UsageError); ok {
		command = ue.Command
		description = ue.Reason
	}
	ctx.ReplyEmbed(HelpEmbed(ctx.GetSession(), command, description))
}
