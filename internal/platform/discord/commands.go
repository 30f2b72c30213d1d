package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/spec-kit/verify-service/internal/config"
)

// guildCommands is the full command set this bot owns in the guild.
func guildCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{setupVerifyCommand}
}

// RegisterCommands overwrites the guild's command set with this bot's
// commands. Run once per deployment, via cmd/register.
func RegisterCommands(cfg config.DiscordConfig) error {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}

	if _, err := session.ApplicationCommandBulkOverwrite(cfg.ClientID, cfg.GuildID, guildCommands()); err != nil {
		return fmt.Errorf("register guild commands: %w", err)
	}
	return nil
}
