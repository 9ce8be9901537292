// Package discord holds the wire types and REST calls for Discord's HTTP
// interactions model.
package discord

import (
	"strconv"
	"time"
)

// Interaction types.
const (
	InteractionPing               = 1
	InteractionApplicationCommand = 2
)

// Interaction response types.
const (
	ResponsePong                   = 1
	ResponseChannelMessage         = 4
	ResponseDeferredChannelMessage = 5
)

// MessageFlagEphemeral hides a response from everyone but the invoker.
const MessageFlagEphemeral = 1 << 6

// OptionString is the string command option type.
const OptionString = 3

// Interaction is an inbound interaction payload.
type Interaction struct {
	ID             string       `json:"id"`
	ApplicationID  string       `json:"application_id"`
	Type           int          `json:"type"`
	Data           *CommandData `json:"data,omitempty"`
	GuildID        string       `json:"guild_id,omitempty"`
	ChannelID      string       `json:"channel_id,omitempty"`
	Member         *Member      `json:"member,omitempty"`
	User           *User        `json:"user,omitempty"`
	Token          string       `json:"token"`
	AppPermissions Permissions  `json:"app_permissions,omitempty"`
}

// CommandData carries the invoked slash command.
type CommandData struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Options []CommandOption `json:"options,omitempty"`
}

// CommandOption is one supplied option value.
type CommandOption struct {
	Name  string `json:"name"`
	Type  int    `json:"type"`
	Value any    `json:"value"`
}

// Member is the invoking guild member.
type Member struct {
	User        *User       `json:"user,omitempty"`
	Nick        string      `json:"nick,omitempty"`
	Permissions Permissions `json:"permissions,omitempty"`
}

// User is a Discord account.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	GlobalName string `json:"global_name,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
}

// DisplayName prefers the global display name.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// AvatarURL returns the CDN URL of the user's avatar, or "" when unset.
func (u *User) AvatarURL() string {
	if u == nil || u.Avatar == "" {
		return ""
	}
	return "https://cdn.discordapp.com/avatars/" + u.ID + "/" + u.Avatar + ".png"
}

// Invoker returns the user behind the interaction in a guild or a DM.
func (i *Interaction) Invoker() *User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InvokerPermissions returns the member's permissions, zero outside guilds.
func (i *Interaction) InvokerPermissions() Permissions {
	if i.Member == nil {
		return 0
	}
	return i.Member.Permissions
}

// StringOption returns the named string option.
func (i *Interaction) StringOption(name string) (string, bool) {
	if i.Data == nil {
		return "", false
	}
	for _, o := range i.Data.Options {
		if o.Name == name {
			s, ok := o.Value.(string)
			return s, ok
		}
	}
	return "", false
}

// Embed is a rich message block.
type Embed struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Color       int             `json:"color,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Fields      []EmbedField    `json:"fields,omitempty"`
	Footer      *EmbedFooter    `json:"footer,omitempty"`
	Author      *EmbedAuthor    `json:"author,omitempty"`
	Thumbnail   *EmbedThumbnail `json:"thumbnail,omitempty"`
}

// EmbedField is one name/value row.
type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// EmbedFooter is the footer line.
type EmbedFooter struct {
	Text    string `json:"text"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedAuthor is the header line.
type EmbedAuthor struct {
	Name    string `json:"name"`
	IconURL string `json:"icon_url,omitempty"`
}

// EmbedThumbnail is the small image at the top right.
type EmbedThumbnail struct {
	URL string `json:"url"`
}

// SetTimestamp stamps the embed with t in RFC 3339.
func (e *Embed) SetTimestamp(t time.Time) *Embed {
	e.Timestamp = t.UTC().Format(time.RFC3339)
	return e
}

// AddField appends a field.
func (e *Embed) AddField(name, value string, inline bool) *Embed {
	e.Fields = append(e.Fields, EmbedField{Name: name, Value: value, Inline: inline})
	return e
}

// InteractionResponse answers an interaction over HTTP.
type InteractionResponse struct {
	Type int           `json:"type"`
	Data *ResponseData `json:"data,omitempty"`
}

// ResponseData is the message body of a response or follow-up edit.
type ResponseData struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds,omitempty"`
	Flags   int     `json:"flags,omitempty"`
}

// Message is the subset of a message object returned by edits.
type Message struct {
	ID        string `json:"id"`
	ChannelID string `json:"channel_id"`
}

// ApplicationCommand is a slash command definition for registration.
type ApplicationCommand struct {
	Name                     string                     `json:"name"                                 yaml:"name"`
	Description              string                     `json:"description"                          yaml:"description"`
	Options                  []ApplicationCommandOption `json:"options,omitempty"                    yaml:"options"`
	DefaultMemberPermissions *string                    `json:"default_member_permissions,omitempty" yaml:"-"`
}

// ApplicationCommandOption declares one command option.
type ApplicationCommandOption struct {
	Type        int    `json:"type"        yaml:"type"`
	Name        string `json:"name"        yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Required    bool   `json:"required"    yaml:"required"`
}

// discordEpoch is the first millisecond of 2015, the snowflake origin.
const discordEpoch = 1420070400000

// SnowflakeTime decodes the creation time embedded in a snowflake ID.
func SnowflakeTime(id string) (time.Time, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(n>>22) + discordEpoch), nil
}
