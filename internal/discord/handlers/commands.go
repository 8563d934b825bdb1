package handlers

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/etr-bot-discord/internal/domain/game"
)

// Commands returns the application commands this bot registers with Discord.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "etr",
			Description: "Eat the Reich dice rolls",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roll",
					Description: "Roll a stat check for your character",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "stat",
							Description: "Stat to roll",
							Required:    true,
							Choices:     statChoices(),
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "equipment",
							Description: "Bonus dice from equipment",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "ability",
							Description: "Bonus dice from abilities",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "character",
							Description: "Character name (defaults to your only character)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "attack",
					Description: "Roll a threat attack against the players",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "threat",
							Description: "Threat actor name",
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "dice",
							Description: "Attack pool size (overrides the threat's pool)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "laststand",
					Description: "Roll your character's last stand",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "character",
							Description: "Character name (defaults to your only character)",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "injury",
					Description: "Roll an injury die",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "import",
					Description: "Rebuild a roll from exported die markup",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "markup",
							Description: "Exported die markup",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "flavor",
							Description: "Heading for the imported roll",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "character",
					Description: "Register your character's stat line",
					Options:     characterOptions(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "threat",
					Description: "Register a threat actor (GM only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Threat name",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "attack",
							Description: "Attack pool size",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "max",
							Description: "Threat track maximum",
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "kind",
							Description: "Kind of actor",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "NPC", Value: string(game.ActorNPC)},
								{Name: "Location", Value: string(game.ActorLocation)},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "actors",
					Description: "List the actors registered in this server",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete an actor you own (GM can delete any)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "name",
							Description: "Actor name",
							Required:    true,
						},
					},
				},
			},
		},
	}
}

func statChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(game.Stats))
	for _, stat := range game.Stats {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  game.StatLabels[stat],
			Value: string(stat),
		})
	}
	return choices
}

func characterOptions() []*discordgo.ApplicationCommandOption {
	options := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "name",
			Description: "Character name",
			Required:    true,
		},
	}

	for _, stat := range game.Stats {
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        string(stat),
			Description: game.StatLabels[stat] + " dice",
			Required:    true,
		})
	}

	options = append(options,
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "blood",
			Description: "Starting blood",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "laststand",
			Description: "Last stand name",
		},
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "laststand_dice",
			Description: "Last stand pool size",
		},
	)

	return options
}
