package handlers

import "github.com/iofh/quiz-app-heroku/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type alias so swag can resolve models in annotations.
type Tournament = models.Tournament
