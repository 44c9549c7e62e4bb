package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/iofh/quiz-app-heroku/internal/services"

	"github.com/gin-gonic/gin"
)

// TournamentHandler is the admin-only CRUD surface. Creation triggers the
// question import.
type TournamentHandler struct {
	tournamentService *services.TournamentService
}

func NewTournamentHandler(tournamentService *services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func tournamentID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid tournament id"})
		return 0, false
	}
	return uint(id), true
}

// ListTournaments godoc
// @Summary      List all tournaments
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} Tournament
// @Failure      401 {object} ErrorResponse
// @Router       /api/v1/admin/tournaments [get]
func (h *TournamentHandler) ListTournaments(c *gin.Context) {
	tournaments, err := h.tournamentService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tournaments)
}

// CreateTournament godoc
// @Summary      Create a tournament
// @Description  Validate dates, persist the tournament and import its ten questions from the trivia provider
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.TournamentInput true "Tournament data"
// @Success      201 {object} Tournament
// @Failure      400 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /api/v1/admin/tournaments [post]
func (h *TournamentHandler) CreateTournament(c *gin.Context) {
	var input services.TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tournament, err := h.tournamentService.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidTournament):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrQuestionImport):
			c.JSON(http.StatusBadGateway, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, tournament)
}

// GetTournament godoc
// @Summary      Get a tournament
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} Tournament
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/tournaments/{id} [get]
func (h *TournamentHandler) GetTournament(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}

	tournament, err := h.tournamentService.Get(id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// UpdateTournament godoc
// @Summary      Update a tournament
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Param        request body services.TournamentInput true "Tournament data"
// @Success      200 {object} Tournament
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/tournaments/{id} [put]
func (h *TournamentHandler) UpdateTournament(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}

	var input services.TournamentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	tournament, err := h.tournamentService.Update(id, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrTournamentNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		case errors.Is(err, services.ErrInvalidTournament):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, tournament)
}

// DeleteTournament godoc
// @Summary      Delete a tournament
// @Description  Delete a tournament; its questions and player records go with it
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Tournament ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse
// @Router       /api/v1/admin/tournaments/{id} [delete]
func (h *TournamentHandler) DeleteTournament(c *gin.Context) {
	id, ok := tournamentID(c)
	if !ok {
		return
	}

	if err := h.tournamentService.Delete(id); err != nil {
		if errors.Is(err, services.ErrTournamentNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "tournament deleted"})
}
