package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/gertd/go-pluralize"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/janisto/instamonitor/internal/discord"
	"github.com/janisto/instamonitor/internal/service/profile"
)

// Embed palette.
const (
	ColorPrimary = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorWarning = 0xf39c12
	ColorDanger  = 0xe74c3c
	ColorPurple  = 0x9b59b6
	ColorDark    = 0x2c3e50
	ColorLight   = 0xecf0f1
	ColorGold    = 0xf1c40f
)

// FooterBrand prefixes every embed footer.
const FooterBrand = "Instagram Monitor Bot"

// MaxFieldLength is the longest embed field value accepted by Discord.
const MaxFieldLength = 1024

// LoadingFrames animate the placeholder while a profile is fetched.
var LoadingFrames = []string{"⏳", "⏰", "⏱️", "⏲️"}

var (
	printer = message.NewPrinter(language.English)
	plurals = pluralize.NewClient()
)

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// TruncateField shortens s to MaxFieldLength characters, replacing the tail
// with "..." when it is cut.
func TruncateField(s string) string {
	r := []rune(s)
	if len(r) <= MaxFieldLength {
		return s
	}
	return string(r[:MaxFieldLength-3]) + "..."
}

// FormatSpan renders "2 hours, 1 minute, 0 seconds".
func FormatSpan(hours, minutes, seconds int) string {
	return strings.Join([]string{
		plurals.Pluralize("hour", hours, true),
		plurals.Pluralize("minute", minutes, true),
		plurals.Pluralize("second", seconds, true),
	}, ", ")
}

// DisplayName appends a check mark to verified accounts.
func DisplayName(res profile.Result) string {
	if res.IsVerified {
		return res.FullName + " ✅"
	}
	return res.FullName
}

func footer(parts ...string) *discord.EmbedFooter {
	return &discord.EmbedFooter{Text: strings.Join(append([]string{FooterBrand}, parts...), " • ")}
}

func author(u *discord.User) *discord.EmbedAuthor {
	if u == nil {
		return nil
	}
	return &discord.EmbedAuthor{Name: u.DisplayName(), IconURL: u.AvatarURL()}
}

func clockTime(t time.Time) string {
	return t.Format("15:04:05")
}

// monitorKind distinguishes the two monitoring flows.
type monitorKind struct {
	command  string
	title    string
	emoji    string
	color    int
	footer   string
	telegram string
}

var (
	banMonitor = monitorKind{
		command:  "monitorban",
		title:    "📡 Monitoring Started",
		emoji:    "📡",
		color:    ColorPrimary,
		footer:   "Ban Monitoring Active",
		telegram: "🚨 Ban Monitoring Started",
	}
	unbanMonitor = monitorKind{
		command:  "monitorunban",
		title:    "🔓 Unban Monitoring Started",
		emoji:    "🔓",
		color:    ColorSuccess,
		footer:   "Unban Monitoring Active",
		telegram: "🔓 Unban Monitoring Started",
	}
)

// LoadingEmbed is shown while a profile is being fetched.
func LoadingEmbed(username, frame string) discord.Embed {
	return discord.Embed{
		Title:       frame + " Fetching Instagram Data...",
		Description: "Searching for @" + username,
		Color:       ColorWarning,
		Footer:      &discord.EmbedFooter{Text: "Please wait..."},
	}
}

// ProfileEmbed renders a resolved profile for a monitoring command.
func ProfileEmbed(kind monitorKind, res profile.Result, invoker *discord.User, now time.Time) discord.Embed {
	tier := profile.TierOf(res.Followers)
	e := discord.Embed{
		Title:       kind.title + " " + tier.Glyph(),
		Description: "**Account:** @" + res.Username,
		Color:       kind.color,
		Author:      author(invoker),
	}
	e.SetTimestamp(now)
	e.AddField("👤 **Full Name**", DisplayName(res), false).
		AddField("📊 **Followers**", "`"+FormatCount(res.Followers)+"`", true).
		AddField("📥 **Following**", "`"+FormatCount(res.Following)+"`", true).
		AddField("📸 **Posts**", "`"+FormatCount(res.Posts)+"`", true).
		AddField("📝 **Bio**", TruncateField(res.Biography), false).
		AddField("⏰ **Time Started**", "`"+clockTime(now)+"`", false).
		AddField("🎯 **Status**", "🟡 **Monitoring Active**", false)

	if res.ProfilePicURL != "" {
		e.Thumbnail = &discord.EmbedThumbnail{URL: res.ProfilePicURL}
	}
	if res.IsSynthetic {
		e.Footer = footer(kind.footer, "Estimated data")
	} else {
		e.Footer = footer(kind.footer)
	}
	return e
}

// FetchErrorEmbed reports a failed lookup.
func FetchErrorEmbed(username, reason string, invoker *discord.User, now time.Time) discord.Embed {
	if reason == "" {
		reason = "Unknown error"
	}
	e := discord.Embed{
		Title:       "❌ Error Fetching Data",
		Description: "Could not fetch data for @" + username,
		Color:       ColorDanger,
		Author:      author(invoker),
		Footer:      footer("Error"),
	}
	e.SetTimestamp(now)
	e.AddField("⚠️ **Error**", TruncateField(reason), false).
		AddField("⏰ **Time**", "`"+clockTime(now)+"`", false)
	return e
}

// ErrorEmbed is a generic user-facing error.
func ErrorEmbed(title, description string, now time.Time) discord.Embed {
	e := discord.Embed{
		Title:       "❌ " + title,
		Description: description,
		Color:       ColorDanger,
		Footer:      footer("Error"),
	}
	e.SetTimestamp(now)
	return e
}

// MissingArgumentEmbed tells the user how to call a command.
func MissingArgumentEmbed(usage string, now time.Time) discord.Embed {
	e := ErrorEmbed("Missing Argument", "You're missing a required argument for this command.", now)
	e.AddField("💡 **Usage**", "`"+usage+"`", false)
	return e
}

// PermissionDeniedEmbed rejects an unauthorized caller.
func PermissionDeniedEmbed(now time.Time) discord.Embed {
	return ErrorEmbed("Permission Denied", "You don't have permission to use this command.", now)
}

// InvalidUsernameEmbed rejects a malformed handle.
func InvalidUsernameEmbed(username string, now time.Time) discord.Embed {
	e := ErrorEmbed("Invalid Username", fmt.Sprintf("`%s` is not a valid Instagram username.", username), now)
	e.AddField("💡 **Rules**", "1-30 letters, digits, periods or underscores", false)
	return e
}

// UnknownCommandEmbed answers a command the bot does not know.
func UnknownCommandEmbed(name string, now time.Time) discord.Embed {
	return ErrorEmbed("Unknown Command", fmt.Sprintf("`/%s` is not a command. Use `/commands` to see them all.", name), now)
}
