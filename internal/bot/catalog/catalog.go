// Package catalog describes the bot's slash commands. The definitions are
// embedded from commands.yaml.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/janisto/instamonitor/internal/discord"
)

//go:embed commands.yaml
var commandsYAML []byte

// Command groups.
const (
	GroupMonitoring  = "monitoring"
	GroupAction      = "action"
	GroupUtility     = "utility"
	GroupDiagnostics = "diagnostics"
	GroupAdmin       = "admin"
)

// Option is a command argument.
type Option struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Required    bool   `yaml:"required"`
}

// Command is one slash command.
type Command struct {
	Name        string   `yaml:"name"`
	Emoji       string   `yaml:"emoji"`
	Group       string   `yaml:"group"`
	Description string   `yaml:"description"`
	Details     string   `yaml:"details"`
	AdminOnly   bool     `yaml:"admin_only"`
	Options     []Option `yaml:"options"`
}

// Usage renders the invocation syntax, e.g. "/monitorban username:<username>".
func (c Command) Usage() string {
	var b strings.Builder
	b.WriteString("/" + c.Name)
	for _, o := range c.Options {
		if o.Required {
			fmt.Fprintf(&b, " %s:<%s>", o.Name, o.Name)
		} else {
			fmt.Fprintf(&b, " [%s:<%s>]", o.Name, o.Name)
		}
	}
	return b.String()
}

// Catalog is the ordered command list.
type Catalog struct {
	Commands []Command `yaml:"commands"`
}

// Load parses the embedded definitions.
func Load() (*Catalog, error) {
	return Parse(commandsYAML)
}

// Parse decodes and validates a catalog document.
func Parse(doc []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("parse command catalog: %w", err)
	}
	if len(c.Commands) == 0 {
		return nil, errors.New("command catalog is empty")
	}
	seen := map[string]bool{}
	for _, cmd := range c.Commands {
		if cmd.Name == "" || cmd.Description == "" {
			return nil, fmt.Errorf("command %q: name and description are required", cmd.Name)
		}
		if seen[cmd.Name] {
			return nil, fmt.Errorf("command %q defined twice", cmd.Name)
		}
		seen[cmd.Name] = true
	}
	return &c, nil
}

// Lookup returns the named command.
func (c *Catalog) Lookup(name string) (Command, bool) {
	for _, cmd := range c.Commands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// Group returns the commands of one group in catalog order.
func (c *Catalog) Group(group string) []Command {
	var out []Command
	for _, cmd := range c.Commands {
		if cmd.Group == group {
			out = append(out, cmd)
		}
	}
	return out
}

// ApplicationCommands converts the catalog into registration payloads.
// Admin-only commands are hidden from members without Administrator.
func (c *Catalog) ApplicationCommands() []discord.ApplicationCommand {
	out := make([]discord.ApplicationCommand, 0, len(c.Commands))
	for _, cmd := range c.Commands {
		ac := discord.ApplicationCommand{Name: cmd.Name, Description: cmd.Description}
		for _, o := range cmd.Options {
			ac.Options = append(ac.Options, discord.ApplicationCommandOption{
				Type:        discord.OptionString,
				Name:        o.Name,
				Description: o.Description,
				Required:    o.Required,
			})
		}
		if cmd.AdminOnly {
			perm := discord.PermAdministrator.String()
			ac.DefaultMemberPermissions = &perm
		}
		out = append(out, ac)
	}
	return out
}
