package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/config"
	"github.com/spec-kit/verify-service/internal/service"
)

// Bot wraps the gateway session and routes interactions to the core
// services. The core never imports this package; it is reached only
// through the narrow service interfaces.
type Bot struct {
	session  *discordgo.Session
	logger   *zap.Logger
	cfg      config.DiscordConfig
	links    *service.LinkService
	commands map[string]commandHandler
}

// NewBot builds the gateway client and registers interaction handlers.
// The connection is not opened until Open is called.
func NewBot(cfg config.DiscordConfig, links *service.LinkService, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		session: session,
		logger:  logger,
		cfg:     cfg,
		links:   links,
	}
	bot.commands = map[string]commandHandler{
		setupVerifyCommand.Name: bot.handleSetupVerify,
	}

	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteractionCreate)
	return bot, nil
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway connection: %w", err)
	}
	return nil
}

// Close tears down the gateway connection.
func (b *Bot) Close() {
	if b != nil && b.session != nil {
		_ = b.session.Close()
	}
}

// Ready reports whether the gateway handshake has completed.
func (b *Bot) Ready() bool {
	return b != nil && b.session != nil && b.session.DataReady
}

// RoleGranter returns the platform-backed grant capability for the pipeline.
func (b *Bot) RoleGranter() service.RoleGranter {
	return &guildRoleGranter{session: b.session, guildID: b.cfg.GuildID, roleID: b.cfg.RoleID}
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("logged in",
		zap.String("username", r.User.Username),
		zap.String("user_id", r.User.ID))
}
