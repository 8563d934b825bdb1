package core

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// InteractionResponder provides an abstraction over Discord's interaction
// response API
type InteractionResponder interface {
	// Defer sends a deferred response, optionally ephemeral
	Defer(ephemeral bool) error

	// Respond sends an immediate response
	Respond(response *Response) error

	// Edit updates a previous response (after defer or respond)
	Edit(response *Response) error

	// FollowUp sends an additional message after the initial response
	FollowUp(response *Response) (*discordgo.Message, error)

	// OriginalMessage fetches the message created by the initial response
	OriginalMessage() (*discordgo.Message, error)
}

// DiscordResponder implements InteractionResponder using Discord's API
type DiscordResponder struct {
	session     *discordgo.Session
	interaction *discordgo.InteractionCreate
	responded   bool
	deferred    bool
}

// NewDiscordResponder creates a new Discord responder
func NewDiscordResponder(s *discordgo.Session, i *discordgo.InteractionCreate) *DiscordResponder {
	return &DiscordResponder{
		session:     s,
		interaction: i,
	}
}

// Defer sends a deferred response
func (r *DiscordResponder) Defer(ephemeral bool) error {
	if r.responded || r.deferred {
		return fmt.Errorf("interaction already responded to")
	}

	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}

	err := r.session.InteractionRespond(r.interaction.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: flags,
		},
	})

	if err == nil {
		r.deferred = true
		r.responded = true
	}

	return err
}

// Respond sends an immediate response. For component interactions a
// Response marked Update rewrites the originating message in place.
func (r *DiscordResponder) Respond(response *Response) error {
	if r.responded {
		return r.Edit(response)
	}

	responseType := discordgo.InteractionResponseChannelMessageWithSource
	if response.Update && r.interaction.Type == discordgo.InteractionMessageComponent {
		responseType = discordgo.InteractionResponseUpdateMessage
	}

	err := r.session.InteractionRespond(r.interaction.Interaction, &discordgo.InteractionResponse{
		Type: responseType,
		Data: r.buildResponseData(response),
	})

	if err == nil {
		r.responded = true
	}

	return err
}

// Edit updates a previous response
func (r *DiscordResponder) Edit(response *Response) error {
	if !r.responded {
		return fmt.Errorf("cannot edit before responding")
	}

	webhook := &discordgo.WebhookEdit{
		Content:         &response.Content,
		Embeds:          &response.Embeds,
		Components:      &response.Components,
		Files:           response.Files,
		AllowedMentions: response.AllowedMentions,
	}

	_, err := r.session.InteractionResponseEdit(r.interaction.Interaction, webhook)
	return err
}

// FollowUp sends an additional message after the initial response
func (r *DiscordResponder) FollowUp(response *Response) (*discordgo.Message, error) {
	if !r.responded {
		return nil, fmt.Errorf("cannot follow up before responding")
	}

	params := &discordgo.WebhookParams{
		Content:         response.Content,
		Embeds:          response.Embeds,
		Components:      response.Components,
		Files:           response.Files,
		AllowedMentions: response.AllowedMentions,
	}
	if response.Ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}

	return r.session.FollowupMessageCreate(r.interaction.Interaction, true, params)
}

// OriginalMessage fetches the message created by the initial response
func (r *DiscordResponder) OriginalMessage() (*discordgo.Message, error) {
	if !r.responded {
		return nil, fmt.Errorf("no response to fetch")
	}
	return r.session.InteractionResponse(r.interaction.Interaction)
}

// buildResponseData converts our Response to Discord's InteractionResponseData
func (r *DiscordResponder) buildResponseData(response *Response) *discordgo.InteractionResponseData {
	data := &discordgo.InteractionResponseData{
		Content:         response.Content,
		Embeds:          response.Embeds,
		Components:      response.Components,
		Files:           response.Files,
		AllowedMentions: response.AllowedMentions,
	}

	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}

	return data
}

// HasResponded returns whether this responder has already sent a response
func (r *DiscordResponder) HasResponded() bool {
	return r.responded
}

// IsDeferred returns whether this responder has sent a deferred response
func (r *DiscordResponder) IsDeferred() bool {
	return r.deferred
}
