package services

import "errors"

var (
	ErrInvalidTournament  = errors.New("invalid tournament")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrQuestionImport     = errors.New("question import failed")
	ErrAlreadyTaken       = errors.New("tournament already taken")
	ErrNotStarted         = errors.New("tournament not started")
	ErrAlreadyCompleted   = errors.New("tournament already completed")
)
