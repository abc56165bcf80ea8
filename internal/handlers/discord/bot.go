package discord

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/services/game"
	"github.com/KirkDiggler/avalon/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

// Bot represents the Discord bot instance
type Bot struct {
	session          *discordgo.Session
	commands         map[string]CommandHandler
	commandIDs       map[string]string // Maps command name to command ID
	gameService      game.Service
	messagingService messaging.Service
	notifier         *Notifier
	logger           *log.Logger
	config           *Config
}

// Config holds the configuration for the bot
type Config struct {
	// Session is shared with the notifier so prompts and replies use one connection
	Session *discordgo.Session

	// Application ID for the bot
	ApplicationID string

	// Optional guild ID for development (server-specific commands)
	GuildID string

	GameService      game.Service
	MessagingService messaging.Service

	// Notifier is drained on Stop so no prompt is cut off mid-send
	Notifier *Notifier

	Logger *log.Logger
}

// New creates a new Discord bot
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Session == nil {
		return nil, errors.New("session cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, errors.New("game service cannot be nil")
	}

	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	bot := &Bot{
		session:          cfg.Session,
		commands:         make(map[string]CommandHandler),
		commandIDs:       make(map[string]string),
		gameService:      cfg.GameService,
		messagingService: cfg.MessagingService,
		notifier:         cfg.Notifier,
		logger:           logger,
		config:           cfg,
	}

	// Register the interaction handler
	bot.session.AddHandler(bot.handleInteraction)

	return bot, nil
}

// Start initializes the Discord connection and registers commands
func (b *Bot) Start() error {
	// Open the websocket connection to Discord
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	avalonCmd := NewAvalonCommand(b.gameService, b.messagingService, b.logger)
	if err := b.RegisterCommand(avalonCmd); err != nil {
		return fmt.Errorf("failed to register avalon command: %w", err)
	}

	b.logger.Info("Bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop gracefully shuts down the Discord connection
func (b *Bot) Stop() error {
	appID := b.appID()

	for cmdName, cmdID := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(appID, b.config.GuildID, cmdID); err != nil {
			b.logger.Warn("Failed to delete command", "command", cmdName, "id", cmdID, "err", err)
		} else {
			b.logger.Info("Deleted command", "command", cmdName, "id", cmdID)
		}
	}

	if b.notifier != nil {
		b.notifier.Wait()
	}

	return b.session.Close()
}

// appID falls back to the session user ID if the application ID is not provided
func (b *Bot) appID() string {
	if b.config.ApplicationID != "" {
		return b.config.ApplicationID
	}
	return b.session.State.User.ID
}

// RegisterCommand registers a command with Discord
func (b *Bot) RegisterCommand(cmd CommandHandler) error {
	// If guild ID is provided, register command for that specific guild
	// Otherwise, register it globally
	if b.config.GuildID != "" {
		b.logger.Info("Registering command for guild", "command", cmd.GetName(), "guild", b.config.GuildID)
	} else {
		b.logger.Info("Registering command globally", "command", cmd.GetName())
	}

	createdCmd, err := b.session.ApplicationCommandCreate(b.appID(), b.config.GuildID, cmd.GetCommand())
	if err != nil {
		return fmt.Errorf("failed to create command %s: %w", cmd.GetName(), err)
	}

	// Store the command handler and its ID
	b.commands[cmd.GetName()] = cmd
	b.commandIDs[cmd.GetName()] = createdCmd.ID
	b.logger.Info("Registered command", "command", cmd.GetName(), "id", createdCmd.ID)

	return nil
}

// handleInteraction handles Discord interactions
func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		if h, ok := b.commands[name]; ok {
			if err := h.Handle(s, i); err != nil {
				b.logger.Error("Error handling command", "command", name, "err", err)
			}
		}
	case discordgo.InteractionMessageComponent:
		if err := b.handleComponentInteraction(s, i); err != nil {
			b.logger.Error("Error handling component interaction", "custom_id", i.MessageComponentData().CustomID, "err", err)
		}
	}
}

// handleComponentInteraction handles button clicks and select menus
func (b *Bot) handleComponentInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	ctx := context.Background()
	customID := i.MessageComponentData().CustomID
	user := userFromInteraction(i)

	switch componentPrefix(customID) {
	case ButtonJoinGame:
		return joinGame(ctx, s, i, user, b.gameService, b.messagingService, b.logger)
	case ButtonBeginGame:
		return startGame(ctx, s, i, user, b.gameService, b.messagingService, b.logger)
	case prefixApproval, prefixMission:
		return b.handleVoteButton(ctx, s, i, user, customID)
	case prefixAssassinate:
		return b.handleAssassinateSelect(ctx, s, i, user, customID)
	default:
		return RespondWithError(s, i, "Error", fmt.Sprintf("Unknown button: %s", customID))
	}
}

// handleVoteButton records a ballot and announces the round when it closes.
// Mission ballots are clicked in DMs, so results go to the session channel.
func (b *Bot) handleVoteButton(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, customID string) error {
	vote, err := ParseVoteButtonID(customID)
	if err != nil {
		return RespondWithError(s, i, "Error", "This ballot is broken. Ask for a new vote.")
	}

	switch vote.Kind {
	case models.VoteKindApproval:
		out, err := b.gameService.CastApprovalVote(ctx, &game.CastApprovalVoteInput{
			SessionID: vote.SessionID,
			PlayerID:  user.ID,
			RoundID:   vote.RoundID,
			Approve:   vote.Yes,
		})
		if err != nil {
			return respondWithServiceError(ctx, s, i, b.messagingService, b.logger, err)
		}
		if out.Result.Complete {
			b.post(s, vote.SessionID, renderApprovalResult(out.State, out.Result))
		}

	case models.VoteKindMission:
		out, err := b.gameService.CastMissionVote(ctx, &game.CastMissionVoteInput{
			SessionID: vote.SessionID,
			PlayerID:  user.ID,
			RoundID:   vote.RoundID,
			Success:   vote.Yes,
		})
		if err != nil {
			return respondWithServiceError(ctx, s, i, b.messagingService, b.logger, err)
		}
		if out.Result.Complete {
			b.announceMission(ctx, s, vote.SessionID, out.Result)
		}
	}

	return RespondWithEphemeralMessage(s, i, "Your vote has been recorded.")
}

func (b *Bot) handleAssassinateSelect(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, customID string) error {
	sessionID, err := ParseAssassinateMenuID(customID)
	if err != nil {
		return RespondWithError(s, i, "Error", "This menu is broken. Use /avalon assassinate instead.")
	}

	values := i.MessageComponentData().Values
	if len(values) != 1 {
		return RespondWithError(s, i, "Error", "Pick exactly one player.")
	}

	return assassinate(ctx, s, i, sessionID, user, values[0], b.gameService, b.messagingService, b.logger)
}

func (b *Bot) announceMission(ctx context.Context, s *discordgo.Session, sessionID string, result *avalon.MissionResult) {
	msg, err := b.messagingService.GetMissionResultMessage(ctx, &messaging.GetMissionResultMessageInput{
		Mission:   result.Mission,
		Succeeded: result.Succeeded,
		Fails:     result.Tally.No,
		Special:   result.Special,
	})
	if err != nil {
		b.logger.Warn("Failed to build mission result", "channel", sessionID, "err", err)
		return
	}

	b.post(s, sessionID, renderMissionResult(result, msg))
}

// post sends a public embed; failures are logged because the vote already counted
func (b *Bot) post(s *discordgo.Session, channelID string, embed *discordgo.MessageEmbed) {
	if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
		b.logger.Warn("Failed to post result", "channel", channelID, "err", err)
	}
}
