package services

import (
	"errors"

	"github.com/Dosada05/skullking/ledger"
)

// Errors shared by the services and mapped to HTTP responses by handlers.
var (
	// Lookups
	ErrGameNotFound  = errors.New("game not found")
	ErrRoundNotFound = ledger.ErrRoundNotFound

	// Validation and game rules
	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidPlayers     = errors.New("players must be a non-empty list of unique, non-blank names")
	ErrInvalidRoundNumber = errors.New("round number must be between 1 and 10")
	ErrUnknownPlayer      = errors.New("player is not part of this game")
	ErrMissingBid         = ledger.ErrMissingBid

	// State conflicts
	ErrGameCompleted = errors.New("game is already completed")

	// Archive
	ErrArchiveDisabled = errors.New("game archive is not configured")
)
