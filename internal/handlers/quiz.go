package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/iofh/quiz-app-heroku/internal/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// SubmitResultsRequest carries the player's answers keyed by question id,
// the way the question form posts them.
type SubmitResultsRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// StartTournament godoc
// @Summary      Start a tournament
// @Description  Register the caller as a participant and return the questions without their correct answers
// @Tags         quiz
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} services.StartResult
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/tournaments/{id}/start [post]
func (h *QuizHandler) StartTournament(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}
	playerID := c.GetUint("user_id")

	result, err := h.quizService.Start(id, playerID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrAlreadyTaken):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "you have taken the tournament already"})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// SubmitResults godoc
// @Summary      Submit answers
// @Description  Score the submitted answers, record the final score and completion date, and return the mismatches
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Param        request body SubmitResultsRequest true "Answers keyed by question id"
// @Success      200 {object} services.SubmitResult
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /api/v1/tournaments/{id}/results [post]
func (h *QuizHandler) SubmitResults(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}
	playerID := c.GetUint("user_id")

	var req SubmitResultsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	answers := make(map[uint]string, len(req.Answers))
	for key, value := range req.Answers {
		questionID, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid question id " + key})
			return
		}
		answers[uint(questionID)] = value
	}

	result, err := h.quizService.Submit(c.Request.Context(), id, playerID, answers)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrNotStarted):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrAlreadyCompleted):
			c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
