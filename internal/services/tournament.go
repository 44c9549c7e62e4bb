package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/iofh/quiz-app-heroku/internal/models"

	"gorm.io/gorm"
)

const NumberOfQuestions = 10

const dateLayout = "2006-01-02"

type TournamentService struct {
	db       *gorm.DB
	provider QuestionProvider
	now      func() time.Time
}

func NewTournamentService(db *gorm.DB, provider QuestionProvider) *TournamentService {
	return &TournamentService{db: db, provider: provider, now: time.Now}
}

type TournamentInput struct {
	Name       string `json:"name" binding:"required,min=1,max=100" example:"Summer Sports Quiz"`
	Category   string `json:"category" binding:"required" example:"21"`
	Difficulty string `json:"difficulty" binding:"required" example:"easy"`
	StartDate  string `json:"start_date" binding:"required" example:"2020-06-02"`
	EndDate    string `json:"end_date" binding:"required" example:"2020-06-26"`
}

func (s *TournamentService) validate(input TournamentInput) error {
	if !models.ValidCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidTournament, input.Category)
	}
	if !models.ValidDifficulty(input.Difficulty) {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidTournament, input.Difficulty)
	}
	start, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return fmt.Errorf("%w: invalid start date %q", ErrInvalidTournament, input.StartDate)
	}
	end, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return fmt.Errorf("%w: invalid end date %q", ErrInvalidTournament, input.EndDate)
	}
	if start.After(end) {
		return fmt.Errorf("%w: finish must occur after start", ErrInvalidTournament)
	}
	// Dates are normalized YYYY-MM-DD strings, so ordering against today is
	// a string comparison, same as the listing filters.
	if input.EndDate < s.now().Format(dateLayout) {
		return fmt.Errorf("%w: end date must occur after today", ErrInvalidTournament)
	}
	return nil
}

// Create validates and persists a tournament, then imports its questions.
// The questions are fetched before anything is written so a provider failure
// leaves no row behind; tournament and questions go in one transaction.
func (s *TournamentService) Create(ctx context.Context, input TournamentInput) (*models.Tournament, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	fetched, err := s.provider.Fetch(ctx, input.Category, input.Difficulty, NumberOfQuestions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuestionImport, err)
	}

	tournament := models.Tournament{
		Name:       input.Name,
		Category:   input.Category,
		Difficulty: input.Difficulty,
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tournament).Error; err != nil {
			return err
		}
		for _, tq := range fetched {
			q := buildQuestion(tournament.ID, tq)
			if err := tx.Create(&q).Error; err != nil {
				return err
			}
			tournament.Questions = append(tournament.Questions, q)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

// buildQuestion places the correct answer at a uniformly random choice slot
// and the incorrect answers at the remaining three.
func buildQuestion(tournamentID uint, tq TriviaQuestion) models.Question {
	var choices [4]string
	order := rand.Perm(4)
	choices[order[0]] = tq.IncorrectAnswers[0]
	choices[order[1]] = tq.IncorrectAnswers[1]
	choices[order[2]] = tq.IncorrectAnswers[2]
	choices[order[3]] = tq.CorrectAnswer

	return models.Question{
		TournamentID:  tournamentID,
		Text:          tq.Text,
		CorrectAnswer: tq.CorrectAnswer,
		Choice1:       choices[0],
		Choice2:       choices[1],
		Choice3:       choices[2],
		Choice4:       choices[3],
	}
}

func (s *TournamentService) List() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if err := s.db.Order("id ASC").Find(&tournaments).Error; err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (s *TournamentService) Get(id uint) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := s.db.First(&tournament, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}
	return &tournament, nil
}

func (s *TournamentService) Update(id uint, input TournamentInput) (*models.Tournament, error) {
	tournament, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(input); err != nil {
		return nil, err
	}

	tournament.Name = input.Name
	tournament.Category = input.Category
	tournament.Difficulty = input.Difficulty
	tournament.StartDate = input.StartDate
	tournament.EndDate = input.EndDate
	if err := s.db.Save(tournament).Error; err != nil {
		return nil, err
	}
	return tournament, nil
}

// Delete removes a tournament and cascades to its questions and player rows.
func (s *TournamentService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Tournament{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTournamentNotFound
		}
		if err := tx.Where("tournament_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		return tx.Where("tournament_id = ?", id).Delete(&models.TournamentPlayer{}).Error
	})
}
