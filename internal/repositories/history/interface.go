package history

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/avalon/internal/repositories/history Repository

import (
	"context"

	"github.com/KirkDiggler/avalon/internal/models"
)

// Repository defines the interface for finished game persistence
type Repository interface {
	// AddRecord archives a finished game
	AddRecord(ctx context.Context, input *AddRecordInput) error

	// GetRecord retrieves a finished game by ID
	GetRecord(ctx context.Context, input *GetRecordInput) (*models.GameRecord, error)

	// GetRecordsForSession retrieves the finished games of a session, newest first
	GetRecordsForSession(ctx context.Context, input *GetRecordsForSessionInput) (*GetRecordsForSessionOutput, error)
}
