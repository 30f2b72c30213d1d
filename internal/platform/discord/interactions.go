package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/domain"
)

// verifyButtonID is the component custom id baked into the setup embed.
const verifyButtonID = "verify_button"

type commandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate) error

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.dispatchCommand(s, i)
	case discordgo.InteractionMessageComponent:
		if i.MessageComponentData().CustomID == verifyButtonID {
			b.handleVerifyButton(s, i)
		}
	}
}

func (b *Bot) dispatchCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	name := i.ApplicationCommandData().Name
	handler, ok := b.commands[name]
	if !ok {
		return
	}
	if err := handler(s, i); err != nil {
		b.logger.Error("command failed", zap.String("command", name), zap.Error(err))
		b.replyEphemeral(s, i, "❌ Error while executing command.")
	}
}

// handleVerifyButton issues a fresh verification link and hands it to
// the member in an ephemeral reply.
func (b *Bot) handleVerifyButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.User == nil {
		return
	}
	user := i.Member.User

	link, err := b.links.Issue(context.Background(), domain.Subject{
		ID:        user.ID,
		Username:  user.Username,
		AvatarURL: user.AvatarURL("256"),
	})
	if err != nil {
		b.logger.Error("link issuance failed", zap.String("subject_id", user.ID), zap.Error(err))
		b.replyEphemeral(s, i, "❌ Could not start verification, please try again.")
		return
	}

	minutes := int(b.links.TTL().Minutes())
	b.replyEphemeral(s, i, fmt.Sprintf(
		"🔗 Click the link to start verification:\n%s\n\nThis link expires in %d minutes.", link, minutes))
}

func (b *Bot) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Warn("interaction reply failed", zap.Error(err))
	}
}
