package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/avalon/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix         = "game_record:"
	sessionRecordsKeyPrefix = "session_records:"
)

// ErrRecordNotFound is returned when a game record is not found
var ErrRecordNotFound = errors.New("game record not found")

// Config holds configuration for the Redis history repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed history repository
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

// AddRecord archives a finished game and indexes it under its session
func (r *redisRepository) AddRecord(ctx context.Context, input *AddRecordInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	record := input.Record
	if record.ID == "" {
		return errors.New("record ID cannot be empty")
	}
	if record.SessionID == "" {
		return errors.New("record session ID cannot be empty")
	}
	if record.EndedAt.IsZero() {
		return errors.New("record end time cannot be zero")
	}

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal game record: %w", err)
	}

	pipe := r.client.TxPipeline()

	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, record.ID)
	pipe.Set(ctx, recordKey, recordJSON, 0)

	sessionKey := fmt.Sprintf("%s%s", sessionRecordsKeyPrefix, record.SessionID)
	pipe.ZAdd(ctx, sessionKey, redis.Z{
		Score:  float64(record.EndedAt.UnixMilli()),
		Member: record.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add game record: %w", err)
	}

	return nil
}

// GetRecord retrieves a finished game by ID
func (r *redisRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*models.GameRecord, error) {
	if input == nil || input.RecordID == "" {
		return nil, errors.New("input and record ID cannot be empty")
	}

	recordKey := fmt.Sprintf("%s%s", recordKeyPrefix, input.RecordID)
	recordJSON, err := r.client.Get(ctx, recordKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get game record: %w", err)
	}

	var record models.GameRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game record: %w", err)
	}

	return &record, nil
}

// GetRecordsForSession retrieves the finished games of a session, newest first
func (r *redisRepository) GetRecordsForSession(ctx context.Context, input *GetRecordsForSessionInput) (*GetRecordsForSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	stop := int64(-1)
	if input.Limit > 0 {
		stop = int64(input.Limit - 1)
	}

	sessionKey := fmt.Sprintf("%s%s", sessionRecordsKeyPrefix, input.SessionID)
	recordIDs, err := r.client.ZRevRange(ctx, sessionKey, 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get record IDs for session: %w", err)
	}

	if len(recordIDs) == 0 {
		return &GetRecordsForSessionOutput{
			Records: []*models.GameRecord{},
		}, nil
	}

	// Fetch every record in one round trip, keeping index order
	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(recordIDs))
	for i, recordID := range recordIDs {
		commands[i] = pipe.Get(ctx, fmt.Sprintf("%s%s", recordKeyPrefix, recordID))
	}

	// A missing record surfaces as redis.Nil on its own command
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get game records: %w", err)
	}

	records := make([]*models.GameRecord, 0, len(recordIDs))
	for i, cmd := range commands {
		recordJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get game record %s: %w", recordIDs[i], err)
		}

		var record models.GameRecord
		if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game record %s: %w", recordIDs[i], err)
		}

		records = append(records, &record)
	}

	return &GetRecordsForSessionOutput{
		Records: records,
	}, nil
}
