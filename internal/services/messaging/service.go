package messaging

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/random"
	gamesvc "github.com/KirkDiggler/avalon/internal/services/game"
)

var roleDescriptions = map[models.Role]string{
	models.RoleMerlin: "You know who the evil players are. Help the good team win, " +
		"but don't be too obvious or the Assassin will come for you at the end.",
	models.RolePercival: "You can see Merlin. If Morgana is in play you see her too " +
		"and cannot tell which of the two is the real Merlin.",
	models.RoleLoyalServant: "No special abilities. Defend the honor of the good team!",
	models.RoleAssassin: "You are the last chance of the evil team. If three missions " +
		"succeed, kill Merlin and evil wins!",
	models.RoleMorgana: "You appear as Merlin to Percival. Use it to lead him astray.",
	models.RoleMordred: "Merlin cannot see you. Lead the evil team from the shadows.",
	models.RoleOberon: "You are evil but alone: your teammates do not know you and " +
		"you do not know them.",
	models.RoleMinion: "No special abilities. Just sow discord among the players!",
}

// friendly rewrites engine errors into text for players
var friendly = map[avalon.GameError]string{
	avalon.ErrWrongPhase:        "That can't be done right now.",
	avalon.ErrGameOver:          "This game is already over.",
	avalon.ErrNotCreator:        "Only the host can do that.",
	avalon.ErrAlreadyCreator:    "That player is already the host.",
	avalon.ErrNotLeader:         "Only the current leader can propose a team.",
	avalon.ErrInvalidTeamSize:   "The team has the wrong number of players for this mission.",
	avalon.ErrDuplicateMember:   "You picked the same player twice.",
	avalon.ErrRoundInProgress:   "A vote is already in progress.",
	avalon.ErrNoRoundInProgress: "There is no vote to take part in.",
	avalon.ErrStaleRound:        "That vote is over. Use the latest poll.",
	avalon.ErrNotEligible:       "You don't get a vote in this round.",
	avalon.ErrAlreadyVoted:      "You already voted.",
	avalon.ErrGameFull:          "The table is full.",
	avalon.ErrGameInProgress:    "The game has already started. Wait for the next one!",
	avalon.ErrAlreadyOnline:     "You're already in the game.",
	avalon.ErrAlreadyOffline:    "You already left the game.",
	avalon.ErrNotEnoughPlayers:  "Not enough players for the selected roles.",
	avalon.ErrTooManyPlayers:    "Too many players at the table.",
	avalon.ErrInvalidRole:       "Only special roles can be picked. Servants and minions fill the rest.",
	avalon.ErrRolesInfeasible:   "Those roles don't fit the good and evil seats.",
	avalon.ErrNotAssassin:       "Only the Assassin can choose a target.",
	avalon.ErrInvalidTarget:     "The Assassin has to pick a good player.",
	avalon.ErrPlayerNotFound:    "That player isn't in this game.",
}

// service implements the Service interface
type service struct {
	random random.Source
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	var source random.Source
	if config != nil {
		source = config.Random
	}
	if source == nil {
		source = random.New(&random.Config{Seed: time.Now().UnixNano()})
	}

	return &service{
		random: source,
	}, nil
}

func (s *service) pick(messages []string) string {
	return messages[s.random.Intn(len(messages))]
}

// GetRoleDescription returns the card text of a role
func (s *service) GetRoleDescription(ctx context.Context, input *GetRoleDescriptionInput) (*GetRoleDescriptionOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if !input.Role.IsValid() {
		return nil, fmt.Errorf("unknown role %q", input.Role)
	}

	faction := "Good"
	if input.Role.IsEvil() {
		faction = "Evil"
	}

	return &GetRoleDescriptionOutput{
		Title:       input.Role.DisplayName(),
		Description: roleDescriptions[input.Role],
		Faction:     faction,
	}, nil
}

// GetJoinGameMessage returns a message for when a player joins a game
func (s *service) GetJoinGameMessage(ctx context.Context, input *GetJoinGameMessageInput) (*GetJoinGameMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch {
	case input.Rejoined:
		messages = []string{
			fmt.Sprintf("%s is back at the round table.", input.PlayerName),
			fmt.Sprintf("%s returns from the road. The quest goes on!", input.PlayerName),
		}
	case input.Started:
		messages = []string{
			fmt.Sprintf("%s takes the last seat. The table is full and the game begins!", input.PlayerName),
			fmt.Sprintf("With %s the table is complete. Check your DMs for your role!", input.PlayerName),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s joins the round table.", input.PlayerName),
			fmt.Sprintf("A new knight arrives: welcome, %s!", input.PlayerName),
			fmt.Sprintf("%s pulls up a chair. Loyal or not, only time will tell.", input.PlayerName),
		}
	}

	return &GetJoinGameMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetGameStatusMessage returns a flavor line for the current phase
func (s *service) GetGameStatusMessage(ctx context.Context, input *GetGameStatusMessageInput) (*GetGameStatusMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch input.Phase {
	case models.GamePhaseLobby:
		messages = []string{
			"The round table is being set. Join now!",
			"Knights and traitors wanted. Join before the host starts the game.",
		}
	case models.GamePhaseBuildTeam:
		messages = []string{
			"The leader is choosing a team. Choose wisely.",
			"Who can be trusted with the next quest?",
		}
	case models.GamePhaseQuest:
		messages = []string{
			"The team is on its quest. Loyalty will be tested.",
			"The quest is underway. Not every card played will be a success.",
		}
	case models.GamePhaseLastChance:
		messages = []string{
			"Good has won three quests, but the Assassin still lurks.",
			"One last chance for evil: the Assassin is hunting Merlin.",
		}
	default:
		return &GetGameStatusMessageOutput{
			Message: "A game of Avalon is in progress.",
		}, nil
	}

	return &GetGameStatusMessageOutput{
		Message: s.pick(messages),
	}, nil
}

// GetMissionResultMessage announces how a mission went
func (s *service) GetMissionResultMessage(ctx context.Context, input *GetMissionResultMessageInput) (*GetMissionResultMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	title := fmt.Sprintf("Mission %d failed", input.Mission+1)
	if input.Succeeded {
		title = fmt.Sprintf("Mission %d succeeded", input.Mission+1)
	}

	var message string
	switch {
	case input.Succeeded && input.Fails == 0:
		message = s.pick([]string{
			"Every card came back a success.",
			"The team stood together. Not a single fail.",
		})
	case input.Succeeded:
		message = fmt.Sprintf("%d fail was played, but this mission can take one.", input.Fails)
	case input.Special:
		message = fmt.Sprintf("%d fails were played. Even this mission could not survive that.", input.Fails)
	default:
		message = s.pick([]string{
			fmt.Sprintf("%d fail(s) among the cards. There is a traitor on the team!", input.Fails),
			fmt.Sprintf("Sabotage! %d fail(s) were played.", input.Fails),
		})
	}

	return &GetMissionResultMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

// GetGameOverMessage announces the winner
func (s *service) GetGameOverMessage(ctx context.Context, input *GetGameOverMessageInput) (*GetGameOverMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var title, message string
	switch input.Winner {
	case models.WinnerGood:
		title = "Good wins!"
		message = fmt.Sprintf("The Assassin struck %s, who was not Merlin. Arthur's knights prevail.", input.TargetName)
	case models.WinnerEvil:
		title = "Evil wins!"
		switch input.Reason {
		case models.EndReasonRejections:
			message = "Five teams in a row were rejected. The kingdom falls into chaos."
		case models.EndReasonAssassination:
			message = fmt.Sprintf("The Assassin found Merlin: %s. Mordred's minions steal the victory.", input.TargetName)
		default:
			message = "Three missions failed. Mordred's minions have won."
		}
	default:
		return nil, errors.New("game has no winner")
	}

	return &GetGameOverMessageOutput{
		Title:   title,
		Message: message,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil || input.Err == nil {
		return nil, errors.New("input and error cannot be nil")
	}

	var svcErr gamesvc.GameError
	if errors.As(input.Err, &svcErr) {
		switch svcErr {
		case gamesvc.ErrGameNotFound:
			return &GetErrorMessageOutput{
				Title:   "No game here",
				Message: "There is no game in this channel. Start one with /avalon create.",
			}, nil
		case gamesvc.ErrGameAlreadyExists:
			return &GetErrorMessageOutput{
				Title:   "Game already running",
				Message: "This channel already has a game. Join it or ask the host to delete it.",
			}, nil
		case gamesvc.ErrRecordNotFound:
			return &GetErrorMessageOutput{
				Title:   "No such game",
				Message: "No finished game in this channel has that ID. Check /avalon history.",
			}, nil
		case gamesvc.ErrNoPlayerRecord:
			return &GetErrorMessageOutput{
				Title:   "No record yet",
				Message: "That player has not finished a game in this channel.",
			}, nil
		}
	}

	var gameErr avalon.GameError
	if errors.As(input.Err, &gameErr) {
		if text, ok := friendly[gameErr]; ok {
			return &GetErrorMessageOutput{
				Title:   titleFor(avalon.Kind(input.Err)),
				Message: text,
			}, nil
		}
	}

	return &GetErrorMessageOutput{
		Title: "Something went wrong",
		Message: s.pick([]string{
			"Merlin's magic failed us. Try again in a moment.",
			"Something went wrong at the round table. Try again.",
		}),
	}, nil
}

func titleFor(kind avalon.ErrorKind) string {
	switch kind {
	case avalon.KindNotFound:
		return "Who?"
	case avalon.KindConfiguration:
		return "Role setup"
	default:
		return "Not now"
	}
}
