package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"github.com/Dosada05/skullking/ledger"
	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/storage"
)

const archivePrefix = "games"

// ArchiveService writes completed games to object storage as JSON documents.
type ArchiveService interface {
	Archive(ctx context.Context, game *models.Game) (*storage.UploadResult, error)
}

// ArchivedGame is the document stored for a completed game.
type ArchivedGame struct {
	Game    *models.Game         `json:"game"`
	Totals  map[string]int       `json:"totals"`
	Winners []string             `json:"winners"`
	Rounds  []ledger.RoundTotals `json:"progression"`
}

type archiveService struct {
	uploader storage.FileUploader
}

func NewArchiveService(uploader storage.FileUploader) ArchiveService {
	return &archiveService{uploader: uploader}
}

func archiveKey(gameID string) string {
	return path.Join(archivePrefix, gameID+".json")
}

func (s *archiveService) Archive(ctx context.Context, game *models.Game) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrArchiveDisabled
	}
	if game.Status != models.GameStatusCompleted {
		return nil, fmt.Errorf("%w: game %s is not completed", ErrValidationFailed, game.ID)
	}

	totals := ledger.Totals(game)
	doc := ArchivedGame{
		Game:    game,
		Totals:  totals,
		Winners: ledger.Winners(game.Players, totals),
		Rounds:  ledger.Progression(game),
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode archive for game %s: %w", game.ID, err)
	}

	result, err := s.uploader.Upload(ctx, archiveKey(game.ID), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to archive game %s: %w", game.ID, err)
	}
	return result, nil
}
