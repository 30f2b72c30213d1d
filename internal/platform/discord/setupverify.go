package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var setupVerifyCommand = &discordgo.ApplicationCommand{
	Name:        "setupverify",
	Description: "Send the verification embed to a channel (owner only).",
	Options: []*discordgo.ApplicationCommandOption{
		{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "Target channel",
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
			Required:     true,
		},
	},
}

// handleSetupVerify posts the verification embed with the verify
// button to the requested channel. Restricted to the guild owner.
func (b *Bot) handleSetupVerify(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	guild, err := s.Guild(i.GuildID)
	if err != nil {
		return fmt.Errorf("resolve guild %s: %w", i.GuildID, err)
	}
	if i.Member == nil || i.Member.User == nil || i.Member.User.ID != guild.OwnerID {
		b.replyEphemeral(s, i, "❌ Only the server owner can use this.")
		return nil
	}

	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		b.replyEphemeral(s, i, "❌ A target channel is required.")
		return nil
	}
	channel := options[0].ChannelValue(s)

	embed := &discordgo.MessageEmbed{
		Title:       "🔒 Server Verification",
		Description: "Click the button below to begin verification. You will receive a private link to continue.",
		Color:       0x00bfff,
	}
	button := discordgo.Button{
		CustomID: verifyButtonID,
		Label:    "Verify",
		Style:    discordgo.PrimaryButton,
	}

	_, err = s.ChannelMessageSendComplex(channel.ID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{button}},
		},
	})
	if err != nil {
		return fmt.Errorf("send verification message: %w", err)
	}

	b.replyEphemeral(s, i, fmt.Sprintf("✅ Sent verification message to <#%s>", channel.ID))
	return nil
}
