package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/services/game"
	"github.com/KirkDiggler/avalon/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
)

const (
	leaderboardSize = 10
	historySize     = 5
)

// teamOptions are the user slots of /avalon team; missions never need more than five
var teamOptions = []string{"player1", "player2", "player3", "player4", "player5"}

// AvalonCommand handles the /avalon command
type AvalonCommand struct {
	BaseCommand
	gameService      game.Service
	messagingService messaging.Service
	logger           *log.Logger
}

// NewAvalonCommand creates a new avalon command handler
func NewAvalonCommand(gameService game.Service, messagingService messaging.Service, logger *log.Logger) *AvalonCommand {
	if logger == nil {
		logger = log.Default()
	}

	teamSlots := make([]*discordgo.ApplicationCommandOption, 0, len(teamOptions))
	for n, name := range teamOptions {
		teamSlots = append(teamSlots, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionUser,
			Name:        name,
			Description: fmt.Sprintf("Team member %d", n+1),
			Required:    n < 2,
		})
	}

	roleChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.Roles()))
	for _, r := range models.Roles() {
		roleChoices = append(roleChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  r.DisplayName(),
			Value: string(r),
		})
	}

	return &AvalonCommand{
		BaseCommand: BaseCommand{
			Name:        "avalon",
			Description: "Play The Resistance: Avalon",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Open a new game in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "join",
					Description: "Sit down at the table, or come back to a running game",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leave",
					Description: "Leave the table",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "roles",
					Description: "Choose the special roles (host only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "roles",
							Description: "Comma separated, e.g. percival, morgana, mordred",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Deal the roles and begin (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "team",
					Description: "Propose a team for the next mission (leader only)",
					Options:     teamSlots,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "assassinate",
					Description: "Name Merlin (assassin only)",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "target",
							Description: "Who you think Merlin is",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "host",
					Description: "Hand host privileges to another player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "player",
							Description: "The new host",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the board",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "whoami",
					Description: "Privately show your role again",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Close the game in this channel (host only)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "leaderboard",
					Description: "Show who wins the most in this channel",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stats",
					Description: "Show a player's record in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "player",
							Description: "Whose record to show, yours by default",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "history",
					Description: "Show the last finished games in this channel",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "game",
							Description: "ID of a past game to show in full",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "role-info",
					Description: "Explain a role",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "role",
							Description: "The role to explain",
							Required:    true,
							Choices:     roleChoices,
						},
					},
				},
			},
		},
		gameService:      gameService,
		messagingService: messagingService,
		logger:           logger,
	}
}

type subcommandOptions map[string]*discordgo.ApplicationCommandInteractionDataOption

func optionsOf(opts []*discordgo.ApplicationCommandInteractionDataOption) subcommandOptions {
	out := make(subcommandOptions, len(opts))
	for _, o := range opts {
		out[o.Name] = o
	}
	return out
}

// userID returns the ID of a user option without resolving the user
func (o subcommandOptions) userID(name string) string {
	opt, ok := o[name]
	if !ok {
		return ""
	}
	id, _ := opt.Value.(string)
	return id
}

func (o subcommandOptions) str(name string) string {
	opt, ok := o[name]
	if !ok {
		return ""
	}
	return opt.StringValue()
}

// Handle processes a Discord interaction for the avalon command
func (c *AvalonCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}

	data := i.ApplicationCommandData()
	if data.Name != c.Name || len(data.Options) == 0 {
		return nil
	}

	sub := data.Options[0]
	if i.GuildID == "" && sub.Name != "role-info" {
		return RespondWithEphemeralMessage(s, i, "Avalon is played in a server channel.")
	}

	ctx := context.Background()
	user := userFromInteraction(i)
	opts := optionsOf(sub.Options)

	switch sub.Name {
	case "create":
		return c.handleCreate(ctx, s, i, user)
	case "join":
		return c.handleJoin(ctx, s, i, user)
	case "leave":
		return c.handleLeave(ctx, s, i, user)
	case "roles":
		return c.handleRoles(ctx, s, i, user, opts.str("roles"))
	case "start":
		return c.handleStart(ctx, s, i, user)
	case "team":
		return c.handleTeam(ctx, s, i, user, opts)
	case "assassinate":
		return c.handleAssassinate(ctx, s, i, user, opts.userID("target"))
	case "host":
		return c.handleHost(ctx, s, i, user, opts.userID("player"))
	case "status":
		return c.handleStatus(ctx, s, i)
	case "whoami":
		return c.handleWhoAmI(ctx, s, i, user)
	case "delete":
		return c.handleDelete(ctx, s, i, user)
	case "leaderboard":
		return c.handleLeaderboard(ctx, s, i)
	case "stats":
		return c.handleStats(ctx, s, i, user, opts.userID("player"))
	case "history":
		return c.handleHistory(ctx, s, i, opts.str("game"))
	case "role-info":
		return c.handleRoleInfo(ctx, s, i, opts.str("role"))
	default:
		return errors.New("unknown subcommand")
	}
}

func (c *AvalonCommand) fail(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, err error) error {
	return respondWithServiceError(ctx, s, i, c.messagingService, c.logger, err)
}

// flavor returns a status line for the phase, or nothing if the messaging service fails
func (c *AvalonCommand) flavor(ctx context.Context, phase models.GamePhase) string {
	out, err := c.messagingService.GetGameStatusMessage(ctx, &messaging.GetGameStatusMessageInput{Phase: phase})
	if err != nil {
		c.logger.Warn("Failed to get status message", "phase", phase, "err", err)
		return ""
	}
	return out.Message
}

func (c *AvalonCommand) handleCreate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser) error {
	out, err := c.gameService.CreateGame(ctx, &game.CreateGameInput{
		SessionID:   i.ChannelID,
		CreatorID:   user.ID,
		CreatorName: user.Name,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	c.logger.Info("Game created", "channel", i.ChannelID, "creator", user.ID)
	content := fmt.Sprintf("%s opened a game of Avalon. %d to %d players.", user.Name, avalon.MinPlayers, avalon.MaxPlayers)
	return RespondWithEmbed(s, i, content, renderStatus(out.State, c.flavor(ctx, out.State.Phase)), lobbyButtons())
}

func (c *AvalonCommand) handleJoin(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser) error {
	return joinGame(ctx, s, i, user, c.gameService, c.messagingService, c.logger)
}

// joinGame is shared by /avalon join and the lobby's Join button
func joinGame(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, gameService game.Service, messagingService messaging.Service, logger *log.Logger) error {
	out, err := gameService.JoinGame(ctx, &game.JoinGameInput{
		SessionID:  i.ChannelID,
		PlayerID:   user.ID,
		PlayerName: user.Name,
	})
	if err != nil {
		return respondWithServiceError(ctx, s, i, messagingService, logger, err)
	}

	msg, err := messagingService.GetJoinGameMessage(ctx, &messaging.GetJoinGameMessageInput{
		PlayerName: user.Name,
		Rejoined:   out.Rejoined,
		Started:    out.Started,
	})
	if err != nil {
		return respondWithServiceError(ctx, s, i, messagingService, logger, err)
	}

	var components []discordgo.MessageComponent
	if out.State.Phase == models.GamePhaseLobby {
		components = lobbyButtons()
	}
	return RespondWithEmbed(s, i, msg.Message, renderStatus(out.State, ""), components)
}

func (c *AvalonCommand) handleLeave(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser) error {
	out, err := c.gameService.LeaveGame(ctx, &game.LeaveGameInput{
		SessionID: i.ChannelID,
		PlayerID:  user.ID,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	var b strings.Builder
	switch {
	case out.GameDeleted:
		fmt.Fprintf(&b, "%s left. Nobody is at the table anymore, so the game is closed.", user.Name)
	case out.Removed:
		fmt.Fprintf(&b, "%s left the table.", user.Name)
	default:
		fmt.Fprintf(&b, "%s stepped away. Use `/avalon join` to come back.", user.Name)
	}
	if out.NewCreatorID != "" && !out.GameDeleted {
		fmt.Fprintf(&b, " %s is the new host.", mention(out.NewCreatorID))
	}

	return RespondWithMessage(s, i, b.String())
}

// parseRoles reads a comma or space separated list of role names, ignoring case
func parseRoles(raw string) ([]models.Role, error) {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	})

	roles := make([]models.Role, 0, len(fields))
	for _, f := range fields {
		role, ok := models.ParseRole(strings.ToLower(f))
		if !ok {
			return nil, fmt.Errorf("unknown role %q", f)
		}
		roles = append(roles, role)
	}
	return roles, nil
}

func (c *AvalonCommand) handleRoles(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, raw string) error {
	roles, err := parseRoles(raw)
	if err != nil {
		names := make([]string, 0, len(models.SpecialRoles()))
		for _, r := range models.SpecialRoles() {
			names = append(names, string(r))
		}
		return RespondWithError(s, i, "Role setup", fmt.Sprintf("%v. Pick from: %s.", err, strings.Join(names, ", ")))
	}

	out, err := c.gameService.SetSpecialRoles(ctx, &game.SetSpecialRolesInput{
		SessionID:   i.ChannelID,
		RequesterID: user.ID,
		Roles:       roles,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	names := make([]string, 0, len(out.Roles))
	for _, r := range out.Roles {
		names = append(names, r.DisplayName())
	}
	return RespondWithMessage(s, i, fmt.Sprintf("Special roles for this game: **%s**.", strings.Join(names, ", ")))
}

func (c *AvalonCommand) handleStart(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser) error {
	return startGame(ctx, s, i, user, c.gameService, c.messagingService, c.logger)
}

// startGame is shared by /avalon start and the lobby's Deal roles button
func startGame(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, gameService game.Service, messagingService messaging.Service, logger *log.Logger) error {
	out, err := gameService.StartGame(ctx, &game.StartGameInput{
		SessionID:   i.ChannelID,
		RequesterID: user.ID,
	})
	if err != nil {
		return respondWithServiceError(ctx, s, i, messagingService, logger, err)
	}

	logger.Info("Game started", "channel", i.ChannelID, "players", len(out.State.Players))
	return RespondWithMessage(s, i, "The roles have been dealt. Check your DMs to learn who you are.")
}

func (c *AvalonCommand) handleTeam(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, opts subcommandOptions) error {
	team := make([]string, 0, len(teamOptions))
	for _, name := range teamOptions {
		if id := opts.userID(name); id != "" {
			team = append(team, id)
		}
	}

	if _, err := c.gameService.ProposeTeam(ctx, &game.ProposeTeamInput{
		SessionID: i.ChannelID,
		LeaderID:  user.ID,
		PlayerIDs: team,
	}); err != nil {
		return c.fail(ctx, s, i, err)
	}

	return RespondWithEphemeralMessage(s, i, "Team proposed. The table is voting.")
}

func (c *AvalonCommand) handleAssassinate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, targetID string) error {
	return assassinate(ctx, s, i, i.ChannelID, user, targetID, c.gameService, c.messagingService, c.logger)
}

// assassinate is shared by /avalon assassinate and the assassin's DM menu
func assassinate(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, sessionID string, user *interactionUser, targetID string, gameService game.Service, messagingService messaging.Service, logger *log.Logger) error {
	out, err := gameService.ChooseAssassinationTarget(ctx, &game.ChooseAssassinationTargetInput{
		SessionID:  sessionID,
		AssassinID: user.ID,
		TargetID:   targetID,
	})
	if err != nil {
		return respondWithServiceError(ctx, s, i, messagingService, logger, err)
	}

	logger.Info("Assassin chose", "channel", sessionID, "target", targetID, "winner", out.Result.Winner)
	return RespondWithEphemeralMessage(s, i, fmt.Sprintf("You named %s.", playerName(out.State, targetID)))
}

func (c *AvalonCommand) handleHost(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, newHostID string) error {
	if _, err := c.gameService.PassCreator(ctx, &game.PassCreatorInput{
		SessionID:    i.ChannelID,
		RequesterID:  user.ID,
		NewCreatorID: newHostID,
	}); err != nil {
		return c.fail(ctx, s, i, err)
	}

	return RespondWithMessage(s, i, fmt.Sprintf("%s is now the host.", mention(newHostID)))
}

func (c *AvalonCommand) handleStatus(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.gameService.GetGame(ctx, &game.GetGameInput{SessionID: i.ChannelID})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	var components []discordgo.MessageComponent
	if out.State.Phase == models.GamePhaseLobby {
		components = lobbyButtons()
	}
	return RespondWithEmbed(s, i, "", renderStatus(out.State, c.flavor(ctx, out.State.Phase)), components)
}

func (c *AvalonCommand) handleWhoAmI(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser) error {
	out, err := c.gameService.GetKnowledge(ctx, &game.GetKnowledgeInput{
		SessionID: i.ChannelID,
		PlayerID:  user.ID,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	role, err := c.messagingService.GetRoleDescription(ctx, &messaging.GetRoleDescriptionInput{Role: out.Knowledge.Role})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	return RespondWithEphemeralEmbed(s, i, renderRoleCard(out.State, out.Knowledge, role))
}

func (c *AvalonCommand) handleDelete(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser) error {
	if _, err := c.gameService.DeleteGame(ctx, &game.DeleteGameInput{
		SessionID:   i.ChannelID,
		RequesterID: user.ID,
	}); err != nil {
		return c.fail(ctx, s, i, err)
	}

	c.logger.Info("Game deleted", "channel", i.ChannelID, "by", user.ID)
	return RespondWithMessage(s, i, "The game in this channel has been closed.")
}

func (c *AvalonCommand) handleLeaderboard(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) error {
	out, err := c.gameService.GetLeaderboard(ctx, &game.GetLeaderboardInput{
		SessionID: i.ChannelID,
		Limit:     leaderboardSize,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, "", renderLeaderboard(out.Leaderboard), nil)
}

func (c *AvalonCommand) handleStats(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, user *interactionUser, playerID string) error {
	if playerID == "" {
		playerID = user.ID
	}

	out, err := c.gameService.GetPlayerStats(ctx, &game.GetPlayerStatsInput{
		SessionID: i.ChannelID,
		PlayerID:  playerID,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, "", renderPlayerStats(out.Stats), nil)
}

func (c *AvalonCommand) handleHistory(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, recordID string) error {
	if recordID != "" {
		out, err := c.gameService.GetRecord(ctx, &game.GetRecordInput{
			SessionID: i.ChannelID,
			RecordID:  strings.Trim(recordID, "` "),
		})
		if err != nil {
			return c.fail(ctx, s, i, err)
		}
		return RespondWithEmbed(s, i, "", renderRecord(out.Record), nil)
	}

	out, err := c.gameService.GetHistory(ctx, &game.GetHistoryInput{
		SessionID: i.ChannelID,
		Limit:     historySize,
	})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	return RespondWithEmbed(s, i, "", renderHistory(out.Records), nil)
}

func (c *AvalonCommand) handleRoleInfo(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, raw string) error {
	role, ok := models.ParseRole(raw)
	if !ok {
		return RespondWithError(s, i, "Role setup", fmt.Sprintf("Unknown role %q.", raw))
	}

	desc, err := c.messagingService.GetRoleDescription(ctx, &messaging.GetRoleDescriptionInput{Role: role})
	if err != nil {
		return c.fail(ctx, s, i, err)
	}

	return RespondWithEphemeralEmbed(s, i, renderRoleInfo(role, desc))
}
