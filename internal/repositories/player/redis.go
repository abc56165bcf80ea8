package player

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	playerStatsKeyPrefix = "player_stats:"
	leaderboardKeyPrefix = "leaderboard:"

	// Hash fields of a player's record
	fieldName      = "name"
	fieldGames     = "games"
	fieldGoodGames = "good_games"
	fieldEvilGames = "evil_games"
	fieldWins      = "wins"
	fieldGoodWins  = "good_wins"
	fieldEvilWins  = "evil_wins"
)

// ErrPlayerNotFound is returned when a player has no record in a session
var ErrPlayerNotFound = errors.New("player not found")

// Config holds configuration for the Redis player repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed player repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func playerStatsKey(sessionID, playerID string) string {
	return fmt.Sprintf("%s%s:%s", playerStatsKeyPrefix, sessionID, playerID)
}

func leaderboardKey(sessionID string) string {
	return fmt.Sprintf("%s%s", leaderboardKeyPrefix, sessionID)
}

// RecordResult adds one finished game to a player's record
func (r *redisRepository) RecordResult(ctx context.Context, input *RecordResultInput) error {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return errors.New("input, session ID and player ID cannot be empty")
	}

	var gamesField, winsField string
	switch input.Alignment {
	case models.AlignmentGood:
		gamesField, winsField = fieldGoodGames, fieldGoodWins
	case models.AlignmentEvil:
		gamesField, winsField = fieldEvilGames, fieldEvilWins
	default:
		return fmt.Errorf("invalid alignment %q", input.Alignment)
	}

	statsKey := playerStatsKey(input.SessionID, input.PlayerID)

	pipe := r.client.TxPipeline()
	if input.PlayerName != "" {
		pipe.HSet(ctx, statsKey, fieldName, input.PlayerName)
	}
	pipe.HIncrBy(ctx, statsKey, fieldGames, 1)
	pipe.HIncrBy(ctx, statsKey, gamesField, 1)

	var won float64
	if input.Won {
		won = 1
		pipe.HIncrBy(ctx, statsKey, fieldWins, 1)
		pipe.HIncrBy(ctx, statsKey, winsField, 1)
	}

	// Incrementing by zero still adds the player to the leaderboard
	pipe.ZIncrBy(ctx, leaderboardKey(input.SessionID), won, input.PlayerID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

// GetPlayer retrieves a player's record in a session
func (r *redisRepository) GetPlayer(ctx context.Context, input *GetPlayerInput) (*models.PlayerStats, error) {
	if input == nil || input.SessionID == "" || input.PlayerID == "" {
		return nil, errors.New("input, session ID and player ID cannot be empty")
	}

	fields, err := r.client.HGetAll(ctx, playerStatsKey(input.SessionID, input.PlayerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrPlayerNotFound
	}

	return parseStats(input.PlayerID, fields)
}

// GetLeaderboard ranks the players of a session by wins, then by fewest games
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*models.Leaderboard, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	playerIDs, err := r.client.ZRevRange(ctx, leaderboardKey(input.SessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	leaderboard := &models.Leaderboard{
		SessionID: input.SessionID,
		Entries:   make([]*models.PlayerStats, 0, len(playerIDs)),
	}
	if len(playerIDs) == 0 {
		return leaderboard, nil
	}

	// Fetch every record in one round trip
	pipe := r.client.Pipeline()
	commands := make([]*redis.MapStringStringCmd, len(playerIDs))
	for i, playerID := range playerIDs {
		commands[i] = pipe.HGetAll(ctx, playerStatsKey(input.SessionID, playerID))
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to get player records: %w", err)
	}

	for i, cmd := range commands {
		fields, err := cmd.Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get player %s: %w", playerIDs[i], err)
		}
		if len(fields) == 0 {
			// Record expired or was removed out from under the leaderboard
			continue
		}

		stats, err := parseStats(playerIDs[i], fields)
		if err != nil {
			return nil, err
		}
		leaderboard.Entries = append(leaderboard.Entries, stats)
	}

	sort.SliceStable(leaderboard.Entries, func(i, j int) bool {
		a, b := leaderboard.Entries[i], leaderboard.Entries[j]
		if a.Wins() != b.Wins() {
			return a.Wins() > b.Wins()
		}
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed < b.GamesPlayed
		}
		return a.PlayerID < b.PlayerID
	})

	if input.Limit > 0 && len(leaderboard.Entries) > input.Limit {
		leaderboard.Entries = leaderboard.Entries[:input.Limit]
	}

	return leaderboard, nil
}

func parseStats(playerID string, fields map[string]string) (*models.PlayerStats, error) {
	stats := &models.PlayerStats{
		PlayerID:   playerID,
		PlayerName: fields[fieldName],
	}

	counters := []struct {
		field string
		dst   *int
	}{
		{fieldGames, &stats.GamesPlayed},
		{fieldGoodGames, &stats.GoodGames},
		{fieldEvilGames, &stats.EvilGames},
		{fieldGoodWins, &stats.GoodWins},
		{fieldEvilWins, &stats.EvilWins},
	}
	for _, c := range counters {
		raw, ok := fields[c.field]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s for player %s: %w", c.field, playerID, err)
		}
		*c.dst = n
	}

	return stats, nil
}
