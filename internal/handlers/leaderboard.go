package handlers

import (
	"errors"
	"net/http"

	"github.com/iofh/quiz-app-heroku/internal/models"
	"github.com/iofh/quiz-app-heroku/internal/services"

	"github.com/gin-gonic/gin"
)

// LeaderboardHandler serves the player-facing read-only views.
type LeaderboardHandler struct {
	leaderboardService *services.LeaderboardService
}

func NewLeaderboardHandler(leaderboardService *services.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

func (h *LeaderboardHandler) listing(c *gin.Context, list func() ([]models.Tournament, error)) {
	tournaments, err := list()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// ListAll godoc
// @Summary      List all tournaments
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Tournament
// @Router       /api/v1/tournaments [get]
func (h *LeaderboardHandler) ListAll(c *gin.Context) {
	h.listing(c, h.leaderboardService.ListAll)
}

// ListOngoing godoc
// @Summary      List ongoing tournaments
// @Description  Tournaments whose date range contains today
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Tournament
// @Router       /api/v1/tournaments/ongoing [get]
func (h *LeaderboardHandler) ListOngoing(c *gin.Context) {
	h.listing(c, h.leaderboardService.ListOngoing)
}

// ListUpcoming godoc
// @Summary      List upcoming tournaments
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Tournament
// @Router       /api/v1/tournaments/upcoming [get]
func (h *LeaderboardHandler) ListUpcoming(c *gin.Context) {
	h.listing(c, h.leaderboardService.ListUpcoming)
}

// ListPast godoc
// @Summary      List past tournaments
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Tournament
// @Router       /api/v1/tournaments/past [get]
func (h *LeaderboardHandler) ListPast(c *gin.Context) {
	h.listing(c, h.leaderboardService.ListPast)
}

// ListQuestions godoc
// @Summary      List a tournament's questions
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {array} services.QuizQuestion
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/tournaments/{id}/questions [get]
func (h *LeaderboardHandler) ListQuestions(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}

	questions, err := h.leaderboardService.Questions(id)
	if err != nil {
		if errors.Is(err, services.ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, questions)
}

// Highscore godoc
// @Summary      Tournament highscores
// @Description  Player scores ordered descending with total participants and average score
// @Tags         tournaments
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} services.Highscore
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/tournaments/{id}/highscore [get]
func (h *LeaderboardHandler) Highscore(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}

	highscore, err := h.leaderboardService.Highscore(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, highscore)
}
