package discord

import (
	"context"
	"errors"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/services/game"
	"github.com/KirkDiggler/avalon/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// CommandHandler defines the interface for Discord command handlers
type CommandHandler interface {
	// GetName returns the command name
	GetName() string

	// GetCommand returns the application command definition
	GetCommand() *discordgo.ApplicationCommand

	// Handle processes a Discord interaction
	Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error
}

// BaseCommand provides common functionality for all commands
type BaseCommand struct {
	Name        string
	Description string
	Options     []*discordgo.ApplicationCommandOption
}

// GetName returns the command name
func (c *BaseCommand) GetName() string {
	return c.Name
}

// GetCommand returns the application command definition
func (c *BaseCommand) GetCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        c.Name,
		Description: c.Description,
		Options:     c.Options,
	}
}

// interactionUser is who clicked or typed. Guild interactions carry a
// member, DM interactions only a user.
type interactionUser struct {
	ID   string
	Name string
}

func userFromInteraction(i *discordgo.InteractionCreate) *interactionUser {
	if i.Member != nil && i.Member.User != nil {
		name := i.Member.Nick
		if name == "" {
			name = displayName(i.Member.User)
		}
		return &interactionUser{ID: i.Member.User.ID, Name: name}
	}
	if i.User != nil {
		return &interactionUser{ID: i.User.ID, Name: displayName(i.User)}
	}
	return &interactionUser{}
}

func displayName(u *discordgo.User) string {
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

// RespondWithMessage sends a simple text message response to an interaction
func RespondWithMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
		},
	})
}

// RespondWithEmbed sends an embed response to an interaction, with optional components
func RespondWithEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, content string, embed *discordgo.MessageEmbed, components []discordgo.MessageComponent) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     []*discordgo.MessageEmbed{embed},
			Components: components,
		},
	})
}

// RespondWithEphemeralEmbed sends an embed only the caller can see
func RespondWithEphemeralEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

// RespondWithError sends an error response only the caller can see
func RespondWithError(s *discordgo.Session, i *discordgo.InteractionCreate, title, errorMessage string) error {
	embed := &discordgo.MessageEmbed{
		Title:       title,
		Description: errorMessage,
		Color:       0xff0000, // Red color
	}

	return RespondWithEphemeralEmbed(s, i, embed)
}

// RespondWithEphemeralMessage sends an ephemeral message response to an interaction
func RespondWithEphemeralMessage(s *discordgo.Session, i *discordgo.InteractionCreate, message string) error {
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// respondWithServiceError turns a game error into a private explanation.
// Errors that are not game rule violations are logged.
func respondWithServiceError(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, messagingService messaging.Service, logger *log.Logger, err error) error {
	var ruleErr avalon.GameError
	var svcErr game.GameError
	if !errors.As(err, &ruleErr) && !errors.As(err, &svcErr) {
		logger.Error("Game action failed", "channel", i.ChannelID, "err", err)
	}

	msg, msgErr := messagingService.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{Err: err})
	if msgErr != nil {
		logger.Error("Failed to build error message", "err", msgErr)
		return RespondWithError(s, i, "Error", "Something went wrong. Try again.")
	}

	return RespondWithError(s, i, msg.Title, msg.Message)
}
