package discord

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/avalon/internal/avalon"
	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/KirkDiggler/avalon/internal/services/messaging"
	"github.com/bwmarrin/discordgo"
)

const (
	colorGood    = 0x3b82f6
	colorEvil    = 0xdc2626
	colorNeutral = 0xa3a3a3
	colorLobby   = 0x00ff00
)

func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

// playerName returns the display name of a seated player, falling back to the ID
func playerName(state *avalon.State, id string) string {
	if p, ok := state.PlayerByID(id); ok && p.Name != "" {
		return p.Name
	}
	return id
}

func playerNames(state *avalon.State, ids []string) string {
	if len(ids) == 0 {
		return "nobody"
	}
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, playerName(state, id))
	}
	return strings.Join(names, ", ")
}

func alignmentColor(a models.Alignment) int {
	if a == models.AlignmentEvil {
		return colorEvil
	}
	return colorGood
}

func phaseLabel(phase models.GamePhase) string {
	switch phase {
	case models.GamePhaseLobby:
		return "Waiting for players"
	case models.GamePhaseBuildTeam:
		return "Team building"
	case models.GamePhaseQuest:
		return "On a quest"
	case models.GamePhaseLastChance:
		return "Assassin's last chance"
	default:
		return string(phase)
	}
}

// missionTrack draws one marker per mission, with the team size of the ones still to come
func missionTrack(state *avalon.State) string {
	if len(state.TeamSizes) == 0 {
		return "Not started"
	}

	var b strings.Builder
	for i, size := range state.TeamSizes {
		if i > 0 {
			b.WriteString("  ")
		}
		switch state.Missions[i] {
		case models.MissionSucceeded:
			b.WriteString("✅")
		case models.MissionFailed:
			b.WriteString("❌")
		default:
			fmt.Fprintf(&b, "%d", size)
			if i == state.SpecialMission {
				b.WriteString("*")
			}
		}
	}
	return b.String()
}

func renderRoster(state *avalon.State) string {
	var b strings.Builder
	for _, p := range state.Players {
		b.WriteString("• ")
		b.WriteString(p.Name)
		if p.ID == state.CreatorID {
			b.WriteString(" (host)")
		}
		if p.ID == state.LeaderID {
			b.WriteString(" 👑")
		}
		if !p.Online {
			b.WriteString(" (away)")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderStatus builds the public status board of a game
func renderStatus(state *avalon.State, flavor string) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{
			Name:   "Phase",
			Value:  phaseLabel(state.Phase),
			Inline: true,
		},
		{
			Name:   fmt.Sprintf("Players (%d/%d)", len(state.Players), avalon.MaxPlayers),
			Value:  renderRoster(state),
			Inline: true,
		},
	}

	roles := make([]string, 0, len(state.SpecialRoles))
	for _, r := range state.SpecialRoles {
		roles = append(roles, r.DisplayName())
	}
	fields = append(fields, &discordgo.MessageEmbedField{
		Name:  "Special roles",
		Value: strings.Join(roles, ", "),
	})

	if state.Phase == models.GamePhaseLobby {
		if setup, ok := avalon.SetupFor(len(state.Players)); ok {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   "Sides",
				Value:  fmt.Sprintf("%d good, %d evil", setup.GoodSeats, setup.EvilSeats(len(state.Players))),
				Inline: true,
			})
		}
	}

	if state.Phase.IsRunning() {
		fields = append(fields,
			&discordgo.MessageEmbedField{
				Name:  "Missions",
				Value: missionTrack(state),
			},
			&discordgo.MessageEmbedField{
				Name:   "Rejected teams",
				Value:  fmt.Sprintf("%d/%d", state.RejectionCount, avalon.MaxRejections),
				Inline: true,
			},
		)
		if state.SpecialMission >= 0 {
			fields = append(fields, &discordgo.MessageEmbedField{
				Name:   "Special mission",
				Value:  fmt.Sprintf("Mission %d succeeds even with one fail", state.SpecialMission+1),
				Inline: true,
			})
		}
	}

	if len(state.Team) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Team",
			Value: playerNames(state, state.Team),
		})
	} else if len(state.Proposal) > 0 {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Proposed team",
			Value: playerNames(state, state.Proposal),
		})
	}

	if state.Round != nil {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Waiting on",
			Value: playerNames(state, state.Round.Pending),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       "Avalon",
		Description: flavor,
		Color:       colorLobby,
		Fields:      fields,
	}
}

// renderRoleCard builds the private message telling a player who they are
func renderRoleCard(state *avalon.State, knowledge *avalon.Knowledge, role *messaging.GetRoleDescriptionOutput) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(role.Description)
	b.WriteString("\n\n")

	visible := playerNames(state, knowledge.Visible)
	switch knowledge.Reveals {
	case avalon.RevelationEvil:
		fmt.Fprintf(&b, "The evil players are: **%s**.\n", visible)
	case avalon.RevelationTeammates:
		fmt.Fprintf(&b, "Your teammates are: **%s**.\n", visible)
	case avalon.RevelationMerlinOrMorgana:
		if len(knowledge.Visible) > 1 {
			fmt.Fprintf(&b, "One of these is Merlin, the other is Morgana: **%s**.\n", visible)
		} else {
			fmt.Fprintf(&b, "Merlin is **%s**.\n", visible)
		}
	}

	for _, hidden := range knowledge.Hidden {
		fmt.Fprintf(&b, "Beware: %s is in play and hidden from you.\n", hidden.DisplayName())
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("You are %s", role.Title),
		Description: b.String(),
		Color:       alignmentColor(knowledge.Role.Alignment()),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s team", role.Faction),
		},
	}
}

// renderApprovalResult shows how everyone voted on a team
func renderApprovalResult(state *avalon.State, result *avalon.ApprovalResult) *discordgo.MessageEmbed {
	title := "Team rejected"
	color := colorNeutral
	if result.Approved {
		title = "Team approved"
		color = colorLobby
	}

	var b strings.Builder
	for _, p := range state.Players {
		vote, ok := result.Ballots[p.ID]
		if !ok {
			continue
		}
		mark := "👎"
		if vote {
			mark = "👍"
		}
		fmt.Fprintf(&b, "%s %s\n", mark, p.Name)
	}

	fields := []*discordgo.MessageEmbedField{
		{
			Name:  "Votes",
			Value: b.String(),
		},
	}
	if !result.Approved && result.Winner == models.WinnerNone {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  "Rejected teams",
			Value: fmt.Sprintf("%d/%d", result.RejectionCount, avalon.MaxRejections),
		})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: fmt.Sprintf("%d for, %d against", result.Tally.Yes, result.Tally.No),
		Color:       color,
		Fields:      fields,
	}
}

// renderMissionResult announces a resolved mission without revealing who played what
func renderMissionResult(result *avalon.MissionResult, message *messaging.GetMissionResultMessageOutput) *discordgo.MessageEmbed {
	color := colorGood
	if !result.Succeeded {
		color = colorEvil
	}

	return &discordgo.MessageEmbed{
		Title:       message.Title,
		Description: message.Message,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "Successes",
				Value:  fmt.Sprintf("%d", result.Tally.Yes),
				Inline: true,
			},
			{
				Name:   "Fails",
				Value:  fmt.Sprintf("%d", result.Tally.No),
				Inline: true,
			},
		},
	}
}

// renderGameOver reveals every role
func renderGameOver(state *avalon.State, message *messaging.GetGameOverMessageOutput) *discordgo.MessageEmbed {
	var b strings.Builder
	for _, p := range state.Players {
		fmt.Fprintf(&b, "%s: %s\n", p.Name, p.Role.DisplayName())
	}

	color := colorGood
	if state.Winner == models.WinnerEvil {
		color = colorEvil
	}

	return &discordgo.MessageEmbed{
		Title:       message.Title,
		Description: message.Message,
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Missions",
				Value: missionTrack(state),
			},
			{
				Name:  "Roles",
				Value: b.String(),
			},
		},
	}
}

func renderLeaderboard(leaderboard *models.Leaderboard) *discordgo.MessageEmbed {
	if len(leaderboard.Entries) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Leaderboard",
			Description: "No finished games in this channel yet.",
			Color:       colorNeutral,
		}
	}

	var b strings.Builder
	for i, entry := range leaderboard.Entries {
		fmt.Fprintf(&b, "%d. **%s**: %d wins in %d games (good %d/%d, evil %d/%d)\n",
			i+1, entry.PlayerName, entry.Wins(), entry.GamesPlayed,
			entry.GoodWins, entry.GoodGames, entry.EvilWins, entry.EvilGames)
	}

	return &discordgo.MessageEmbed{
		Title:       "Leaderboard",
		Description: b.String(),
		Color:       colorLobby,
	}
}

func renderHistory(records []*models.GameRecord) *discordgo.MessageEmbed {
	if len(records) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "Past games",
			Description: "No finished games in this channel yet.",
			Color:       colorNeutral,
		}
	}

	var b strings.Builder
	for _, r := range records {
		var successes int
		for _, m := range r.Missions {
			if m == models.MissionSucceeded {
				successes++
			}
		}
		fmt.Fprintf(&b, "%s: **%s** won by %s, %d/%d missions succeeded, %d players (`%s`)\n",
			r.EndedAt.Format("2006-01-02 15:04"), r.Winner, r.Reason, successes, len(r.Missions), len(r.Players), r.ID)
	}

	return &discordgo.MessageEmbed{
		Title:       "Past games",
		Description: b.String(),
		Color:       colorLobby,
	}
}

// renderRecord shows one finished game with every role revealed
func renderRecord(record *models.GameRecord) *discordgo.MessageEmbed {
	var track strings.Builder
	for i, m := range record.Missions {
		if i > 0 {
			track.WriteString("  ")
		}
		if m == models.MissionSucceeded {
			track.WriteString("✅")
		} else {
			track.WriteString("❌")
		}
	}

	var roles strings.Builder
	for _, p := range record.Players {
		fmt.Fprintf(&roles, "%s: %s", p.Name, p.Role.DisplayName())
		if p.ID == record.AssassinTargetID {
			roles.WriteString(" 🗡️")
		}
		roles.WriteString("\n")
	}

	color := colorGood
	if record.Winner == models.WinnerEvil {
		color = colorEvil
	}

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Game %s", record.ID),
		Description: fmt.Sprintf("**%s** won by %s", record.Winner, record.Reason),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Missions",
				Value: track.String(),
			},
			{
				Name:  "Roles",
				Value: roles.String(),
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: record.EndedAt.Format("2006-01-02 15:04"),
		},
	}
}

func renderPlayerStats(stats *models.PlayerStats) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: stats.PlayerName,
		Description: fmt.Sprintf("%d wins in %d games (good %d/%d, evil %d/%d)",
			stats.Wins(), stats.GamesPlayed, stats.GoodWins, stats.GoodGames, stats.EvilWins, stats.EvilGames),
		Color: colorLobby,
	}
}

// voteButtons builds the two ballot buttons of a round
func voteButtons(sessionID string, round *avalon.RoundInfo) []discordgo.MessageComponent {
	yesLabel, noLabel := "Approve", "Reject"
	if round.Kind == models.VoteKindMission {
		yesLabel, noLabel = "Success", "Fail"
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    yesLabel,
					Style:    discordgo.SuccessButton,
					CustomID: VoteButtonID(round.Kind, sessionID, round.ID, true),
				},
				discordgo.Button{
					Label:    noLabel,
					Style:    discordgo.DangerButton,
					CustomID: VoteButtonID(round.Kind, sessionID, round.ID, false),
				},
			},
		},
	}
}

// assassinMenu lets the assassin pick a target among the good players
func assassinMenu(state *avalon.State, candidates []string) []discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(candidates))
	for _, id := range candidates {
		options = append(options, discordgo.SelectMenuOption{
			Label: playerName(state, id),
			Value: id,
		})
	}

	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.SelectMenu{
					CustomID:    AssassinateMenuID(state.ID),
					Placeholder: "Who is Merlin?",
					Options:     options,
				},
			},
		},
	}
}

// lobbyButtons lets players sit down and the host deal without typing commands
func lobbyButtons() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "Join",
					Style:    discordgo.PrimaryButton,
					CustomID: ButtonJoinGame,
				},
				discordgo.Button{
					Label:    "Deal roles",
					Style:    discordgo.SuccessButton,
					CustomID: ButtonBeginGame,
				},
			},
		},
	}
}

// renderRoleInfo describes a role outside of any game
func renderRoleInfo(role models.Role, desc *messaging.GetRoleDescriptionOutput) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       desc.Title,
		Description: desc.Description,
		Color:       alignmentColor(role.Alignment()),
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%s team", desc.Faction),
		},
	}
}
