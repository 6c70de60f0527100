package utils

import (
	"github.com/bwmarrin/discordgo"
)

// SendError sends an ephemeral error embed in response to an interaction.
func SendError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: EmojiCross + " " + message,
					Color:       ColorRed,
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// SendSuccess sends an ephemeral confirmation embed.
func SendSuccess(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{
				{
					Description: EmojiTick + " " + message,
					Color:       ColorGreen,
				},
			},
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

// AckUpdate acknowledges a component click without changing the
// message, for handlers that will edit it themselves.
func AckUpdate(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
}
