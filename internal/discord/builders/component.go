package builders

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/etr-bot-discord/internal/discord/core"
)

// ComponentBuilder builds Discord message components
type ComponentBuilder struct {
	rows            []discordgo.MessageComponent
	currentRow      []discordgo.MessageComponent
	customIDBuilder *core.CustomIDBuilder
}

// NewComponentBuilder creates a new component builder
func NewComponentBuilder(customIDBuilder *core.CustomIDBuilder) *ComponentBuilder {
	return &ComponentBuilder{
		rows:            make([]discordgo.MessageComponent, 0),
		currentRow:      make([]discordgo.MessageComponent, 0, 5), // Max 5 per row
		customIDBuilder: customIDBuilder,
	}
}

// Button adds a button to the current row
func (b *ComponentBuilder) Button(label string, style discordgo.ButtonStyle, action, target string, args ...string) *ComponentBuilder {
	button := discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.customID(action, target, args...),
	}

	b.addComponent(button)
	return b
}

// DisabledButton adds a disabled button. It still carries a real custom ID
// because Discord requires IDs to be unique within a message.
func (b *ComponentBuilder) DisabledButton(label string, style discordgo.ButtonStyle, action, target string, args ...string) *ComponentBuilder {
	button := discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.customID(action, target, args...),
		Disabled: true,
	}

	b.addComponent(button)
	return b
}

// EmojiButton adds a button with emoji
func (b *ComponentBuilder) EmojiButton(label, emoji string, style discordgo.ButtonStyle, action, target string, args ...string) *ComponentBuilder {
	button := discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.customID(action, target, args...),
		Emoji: &discordgo.ComponentEmoji{
			Name: emoji,
		},
	}

	b.addComponent(button)
	return b
}

// SelectMenu adds a select menu
func (b *ComponentBuilder) SelectMenu(placeholder, action, target string, options []SelectOption, config ...SelectConfig) *ComponentBuilder {
	customID := ""
	if b.customIDBuilder != nil {
		customID = b.customIDBuilder.Select(action, target)
	} else {
		customID = core.NewCustomID("default", action).WithTarget(target).MustEncode()
	}

	// Convert options
	discordOptions := make([]discordgo.SelectMenuOption, len(options))
	for i, opt := range options {
		discordOptions[i] = discordgo.SelectMenuOption{
			Label:       opt.Label,
			Value:       opt.Value,
			Description: opt.Description,
			Default:     opt.Default,
		}
		if opt.Emoji != "" {
			discordOptions[i].Emoji = &discordgo.ComponentEmoji{
				Name: opt.Emoji,
			}
		}
	}

	selectMenu := discordgo.SelectMenu{
		CustomID:    customID,
		Placeholder: placeholder,
		Options:     discordOptions,
	}

	// Apply config if provided
	if len(config) > 0 {
		cfg := config[0]
		if cfg.MinValues > 0 {
			minVal := cfg.MinValues
			selectMenu.MinValues = &minVal
		}
		if cfg.MaxValues > 0 {
			selectMenu.MaxValues = cfg.MaxValues
		}
		selectMenu.Disabled = cfg.Disabled
	}

	b.addComponent(selectMenu)
	return b
}

// NewRow starts a new action row
func (b *ComponentBuilder) NewRow() *ComponentBuilder {
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{
			Components: b.currentRow,
		})
		b.currentRow = make([]discordgo.MessageComponent, 0, 5)
	}
	return b
}

// Build returns the built components
func (b *ComponentBuilder) Build() []discordgo.MessageComponent {
	// Add any remaining components in current row
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{
			Components: b.currentRow,
		})
	}

	return b.rows
}

// addComponent adds a component to the current row
func (b *ComponentBuilder) addComponent(component discordgo.MessageComponent) {
	// Check if we need a new row
	if len(b.currentRow) >= 5 {
		b.NewRow()
	}

	b.currentRow = append(b.currentRow, component)
}

func (b *ComponentBuilder) customID(action, target string, args ...string) string {
	if b.customIDBuilder != nil {
		return b.customIDBuilder.Button(action, target, args...)
	}
	return core.NewCustomID("default", action).WithTarget(target).WithArgs(args...).MustEncode()
}

// SelectOption represents an option in a select menu
type SelectOption struct {
	Label       string
	Value       string
	Description string
	Emoji       string
	Default     bool
}

// SelectConfig configures a select menu
type SelectConfig struct {
	MinValues int
	MaxValues int
	Disabled  bool
}

// Common button styles helpers
func (b *ComponentBuilder) PrimaryButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.PrimaryButton, action, target, args...)
}

func (b *ComponentBuilder) SecondaryButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.SecondaryButton, action, target, args...)
}

func (b *ComponentBuilder) SuccessButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.SuccessButton, action, target, args...)
}

func (b *ComponentBuilder) DangerButton(label, action, target string, args ...string) *ComponentBuilder {
	return b.Button(label, discordgo.DangerButton, action, target, args...)
}
