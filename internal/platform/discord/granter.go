package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// guildRoleGranter implements service.RoleGranter against the guild
// configured at startup.
type guildRoleGranter struct {
	session *discordgo.Session
	guildID string
	roleID  string
}

// ResolveMembership fetches the subject's member record in the guild.
// An unknown-member reply means the subject is simply not on the
// server; every other failure is an infrastructure error.
func (g *guildRoleGranter) ResolveMembership(ctx context.Context, subjectID string) (bool, error) {
	_, err := g.session.GuildMember(g.guildID, subjectID, discordgo.WithContext(ctx))
	if err != nil {
		if isUnknownMember(err) {
			return false, nil
		}
		return false, fmt.Errorf("fetch member %s in guild %s: %w", subjectID, g.guildID, err)
	}
	return true, nil
}

// GrantRole adds the configured role to the subject's membership.
func (g *guildRoleGranter) GrantRole(ctx context.Context, subjectID string) error {
	if err := g.session.GuildMemberRoleAdd(g.guildID, subjectID, g.roleID, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("add role %s to member %s: %w", g.roleID, subjectID, err)
	}
	return nil
}

func isUnknownMember(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		return restErr.Message.Code == discordgo.ErrCodeUnknownMember ||
			restErr.Message.Code == discordgo.ErrCodeUnknownUser
	}
	return false
}
