package history

import "github.com/KirkDiggler/avalon/internal/models"

type AddRecordInput struct {
	Record *models.GameRecord
}

type GetRecordInput struct {
	RecordID string
}

type GetRecordsForSessionInput struct {
	SessionID string

	// Limit caps the number of records, 0 means all of them
	Limit int
}

type GetRecordsForSessionOutput struct {
	Records []*models.GameRecord
}
