package discord

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/avalon/internal/models"
	gamesvc "github.com/KirkDiggler/avalon/internal/services/game"
	"github.com/KirkDiggler/avalon/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultNotifyTimeout = 15 * time.Second
	maxConcurrentDMs     = 5
)

// Messenger is the part of a Discord session the notifier sends through
type Messenger interface {
	UserChannelCreate(recipientID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// NotifierConfig holds configuration for the Discord notifier
type NotifierConfig struct {
	Messenger        Messenger
	MessagingService messaging.Service

	// Timeout bounds a single notification, defaults to 15s
	Timeout time.Duration

	Logger *log.Logger
}

// Notifier delivers game prompts over Discord. The game session ID is the
// channel the game is played in; private prompts go out as DMs.
type Notifier struct {
	messenger        Messenger
	messagingService messaging.Service
	timeout          time.Duration
	logger           *log.Logger

	wg sync.WaitGroup
}

var _ gamesvc.Notifier = (*Notifier)(nil)

// NewNotifier creates a new Discord notifier
func NewNotifier(cfg *NotifierConfig) (*Notifier, error) {
	if cfg == nil {
		return nil, errors.New("notifier config is nil")
	}
	if cfg.Messenger == nil {
		return nil, errors.New("messenger is required")
	}
	if cfg.MessagingService == nil {
		return nil, errors.New("messaging service is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultNotifyTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Notifier{
		messenger:        cfg.Messenger,
		messagingService: cfg.MessagingService,
		timeout:          timeout,
		logger:           logger,
	}, nil
}

// Wait blocks until every notification in flight has been sent or given up on
func (n *Notifier) Wait() {
	n.wg.Wait()
}

// dispatch runs send in the background so game actions never wait on Discord
func (n *Notifier) dispatch(event, sessionID string, send func(ctx context.Context) error) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		if err := send(ctx); err != nil {
			n.logger.Warn("Notification failed", "event", event, "session", sessionID, "err", err)
			return
		}
		n.logger.Debug("Notification sent", "event", event, "session", sessionID)
	}()
}

func (n *Notifier) post(channelID string, msg *discordgo.MessageSend) error {
	if _, err := n.messenger.ChannelMessageSendComplex(channelID, msg); err != nil {
		return fmt.Errorf("failed to post to channel %s: %w", channelID, err)
	}
	return nil
}

func (n *Notifier) dm(userID string, msg *discordgo.MessageSend) error {
	channel, err := n.messenger.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM with %s: %w", userID, err)
	}
	if _, err := n.messenger.ChannelMessageSendComplex(channel.ID, msg); err != nil {
		return fmt.Errorf("failed to DM %s: %w", userID, err)
	}
	return nil
}

// dmAll sends every DM even when some fail and returns the first failure
func (n *Notifier) dmAll(ctx context.Context, messages map[string]*discordgo.MessageSend) error {
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentDMs)

	for userID, msg := range messages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return n.dm(userID, msg)
		})
	}

	return g.Wait()
}

// RoleAssigned DMs a player their role card
func (n *Notifier) RoleAssigned(_ context.Context, input *gamesvc.RoleAssignedInput) error {
	if input == nil || input.State == nil || input.Knowledge == nil {
		return errors.New("role assignment is incomplete")
	}
	state, knowledge := input.State, input.Knowledge

	n.dispatch("role_assigned", state.ID, func(ctx context.Context) error {
		role, err := n.messagingService.GetRoleDescription(ctx, &messaging.GetRoleDescriptionInput{
			Role: knowledge.Role,
		})
		if err != nil {
			return err
		}

		return n.dm(knowledge.PlayerID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{renderRoleCard(state, knowledge, role)},
		})
	})
	return nil
}

// TeamRequested posts the board and pings the leader
func (n *Notifier) TeamRequested(_ context.Context, input *gamesvc.TeamRequestedInput) error {
	if input == nil || input.State == nil {
		return errors.New("team request has no state")
	}
	state := input.State
	if state.Turn >= len(state.TeamSizes) {
		return fmt.Errorf("no mission left to staff in game %s", state.ID)
	}

	n.dispatch("team_requested", state.ID, func(ctx context.Context) error {
		flavor, err := n.messagingService.GetGameStatusMessage(ctx, &messaging.GetGameStatusMessageInput{
			Phase: state.Phase,
		})
		if err != nil {
			return err
		}

		return n.post(state.ID, &discordgo.MessageSend{
			Content: fmt.Sprintf("%s, pick %d players for mission %d with `/avalon team`.",
				mention(state.LeaderID), state.TeamSizes[state.Turn], state.Turn+1),
			Embeds: []*discordgo.MessageEmbed{renderStatus(state, flavor.Message)},
		})
	})
	return nil
}

// VoteRequested posts team approval ballots in the channel and sends mission
// ballots privately to each team member
func (n *Notifier) VoteRequested(_ context.Context, input *gamesvc.VoteRequestedInput) error {
	if input == nil || input.State == nil || input.Round == nil {
		return errors.New("vote request has no round")
	}
	state, round := input.State, input.Round

	switch round.Kind {
	case models.VoteKindApproval:
		n.dispatch("approval_requested", state.ID, func(context.Context) error {
			return n.post(state.ID, &discordgo.MessageSend{
				Content: fmt.Sprintf("%s proposes **%s** for mission %d. Everyone votes.",
					playerName(state, state.LeaderID), playerNames(state, state.Proposal), state.Turn+1),
				Components: voteButtons(state.ID, round),
			})
		})

	case models.VoteKindMission:
		n.dispatch("mission_requested", state.ID, func(ctx context.Context) error {
			if err := n.post(state.ID, &discordgo.MessageSend{
				Content: fmt.Sprintf("**%s** set out on mission %d. Check your DMs to play your card.",
					playerNames(state, round.Voters), state.Turn+1),
			}); err != nil {
				return err
			}

			ballots := make(map[string]*discordgo.MessageSend, len(round.Voters))
			for _, id := range round.Voters {
				ballots[id] = &discordgo.MessageSend{
					Content:    fmt.Sprintf("Mission %d: will it succeed or fail?", state.Turn+1),
					Components: voteButtons(state.ID, round),
				}
			}
			return n.dmAll(ctx, ballots)
		})

	default:
		return fmt.Errorf("unknown vote kind %q", round.Kind)
	}
	return nil
}

// AssassinationRequested announces the finale and DMs the assassin a target menu
func (n *Notifier) AssassinationRequested(_ context.Context, input *gamesvc.AssassinationRequestedInput) error {
	if input == nil || input.State == nil {
		return errors.New("assassination request has no state")
	}
	if len(input.Candidates) == 0 {
		return errors.New("assassination request has no candidates")
	}
	state := input.State

	n.dispatch("assassination_requested", state.ID, func(context.Context) error {
		if err := n.post(state.ID, &discordgo.MessageSend{
			Content: "Three missions succeeded. The Assassin now gets one chance to find Merlin.",
		}); err != nil {
			return err
		}

		return n.dm(input.AssassinID, &discordgo.MessageSend{
			Content:    "Good has won three missions. Name Merlin and evil still wins.",
			Components: assassinMenu(state, input.Candidates),
		})
	})
	return nil
}

// GameEnded posts the result and reveals every role
func (n *Notifier) GameEnded(_ context.Context, input *gamesvc.GameEndedInput) error {
	if input == nil || input.State == nil {
		return errors.New("game end has no state")
	}
	state := input.State

	var target string
	if state.AssassinTargetID != "" {
		target = playerName(state, state.AssassinTargetID)
	}

	n.dispatch("game_ended", state.ID, func(ctx context.Context) error {
		message, err := n.messagingService.GetGameOverMessage(ctx, &messaging.GetGameOverMessageInput{
			Winner:     state.Winner,
			Reason:     state.EndReason,
			TargetName: target,
		})
		if err != nil {
			return err
		}

		return n.post(state.ID, &discordgo.MessageSend{
			Embeds: []*discordgo.MessageEmbed{renderGameOver(state, message)},
		})
	})
	return nil
}
