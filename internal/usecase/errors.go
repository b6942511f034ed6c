package usecase

import (
	"errors"

	"github.com/riskibarqy/leetstreak/internal/domain/ranking"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("resource conflict")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrInvariantViolation    = ranking.ErrInvariantViolation
)
