// Package discord implements the channel-management boundary on top of the Discord REST API.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"discussion_bot/internal/model"
)

type discordAPI interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	GuildChannels(guildID string, options ...discordgo.RequestOption) ([]*discordgo.Channel, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
}

// Client lists and creates channels in a single guild.
type Client struct {
	api     discordAPI
	guildID string
}

// New creates a Client authenticated with the given bot token.
func New(token, guildID string) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	return &Client{api: session, guildID: guildID}, nil
}

// BotUser returns the tag of the authenticated bot account.
func (c *Client) BotUser(ctx context.Context) (string, error) {
	u, err := c.api.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("get bot user: %w", err)
	}
	return u.String(), nil
}

// GuildName looks up the configured guild and returns its name.
func (c *Client) GuildName(ctx context.Context) (string, error) {
	g, err := c.api.Guild(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("get guild %s: %w", c.guildID, err)
	}
	return g.Name, nil
}

// ListChannels returns a snapshot of the guild's channels.
func (c *Client) ListChannels(ctx context.Context) ([]model.Channel, error) {
	chs, err := c.api.GuildChannels(c.guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list guild channels: %w", err)
	}
	out := make([]model.Channel, 0, len(chs))
	for _, ch := range chs {
		out = append(out, toModel(ch))
	}
	return out, nil
}

// CreateChannel creates a channel in the guild and returns it as assigned by Discord.
func (c *Client) CreateChannel(ctx context.Context, req model.CreateChannelRequest) (model.Channel, error) {
	data := discordgo.GuildChannelCreateData{
		Name:     req.Name,
		Type:     channelType(req.Kind),
		Topic:    req.Topic,
		ParentID: req.ParentCategory,
	}
	ch, err := c.api.GuildChannelCreateComplex(c.guildID, data, discordgo.WithContext(ctx))
	if err != nil {
		return model.Channel{}, fmt.Errorf("create channel %q: %w", req.Name, err)
	}
	return toModel(ch), nil
}

func toModel(ch *discordgo.Channel) model.Channel {
	kind := model.KindOther
	if ch.Type == discordgo.ChannelTypeGuildForum {
		kind = model.KindForum
	}
	return model.Channel{
		ID:       ch.ID,
		Name:     ch.Name,
		Kind:     kind,
		ParentID: ch.ParentID,
	}
}

func channelType(k model.ChannelKind) discordgo.ChannelType {
	if k == model.KindForum {
		return discordgo.ChannelTypeGuildForum
	}
	return discordgo.ChannelTypeGuildText
}
