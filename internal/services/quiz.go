package services

import (
	"context"
	"errors"
	"time"

	"github.com/iofh/quiz-app-heroku/internal/models"

	"gorm.io/gorm"
)

// QuizService runs the per-player session flow: start once, submit once.
type QuizService struct {
	db          *gorm.DB
	leaderboard *LeaderboardService
	now         func() time.Time
}

func NewQuizService(db *gorm.DB, leaderboard *LeaderboardService) *QuizService {
	return &QuizService{db: db, leaderboard: leaderboard, now: time.Now}
}

// QuizQuestion is a question as shown to a playing user: the four choices
// without the correct answer.
type QuizQuestion struct {
	ID      uint     `json:"id"`
	Text    string   `json:"question"`
	Choices []string `json:"choices"`
}

type StartResult struct {
	TournamentID uint           `json:"tournament_id"`
	Questions    []QuizQuestion `json:"questions"`
}

// Start creates the player's participation row and returns the questions.
// The unique (tournament_id, player_id) index backs the create: if two
// concurrent starts race past the existence check, the insert of the loser
// fails and is reported as ErrAlreadyTaken.
func (s *QuizService) Start(tournamentID, playerID uint) (*StartResult, error) {
	var tournament models.Tournament
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var existing models.TournamentPlayer
	err := s.db.Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	participation := models.TournamentPlayer{
		TournamentID: tournamentID,
		PlayerID:     playerID,
		Score:        0,
	}
	if err := s.db.Create(&participation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyTaken
		}
		return nil, err
	}

	questions, err := s.tournamentQuestions(tournamentID)
	if err != nil {
		return nil, err
	}

	result := &StartResult{TournamentID: tournamentID}
	for _, q := range questions {
		result.Questions = append(result.Questions, QuizQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Choices: q.Choices(),
		})
	}
	return result, nil
}

func (s *QuizService) tournamentQuestions(tournamentID uint) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.Where("tournament_id = ?", tournamentID).Order("id ASC").Find(&questions).Error
	return questions, err
}

// IncorrectAnswer pairs a missed question with what the player submitted.
type IncorrectAnswer struct {
	QuestionID      uint   `json:"question_id"`
	Question        string `json:"question"`
	SubmittedAnswer string `json:"submitted_answer"`
	CorrectAnswer   string `json:"correct_answer"`
}

type SubmitResult struct {
	TournamentID   uint              `json:"tournament_id"`
	CorrectCount   int               `json:"correct_count"`
	TotalQuestions int               `json:"total_questions"`
	Incorrect      []IncorrectAnswer `json:"incorrect"`
}

// Submit scores the player's answers, keyed by question id, and records the
// final score and completion date. Completed sessions are terminal: a second
// submit is rejected.
func (s *QuizService) Submit(ctx context.Context, tournamentID, playerID uint, answers map[uint]string) (*SubmitResult, error) {
	var tournament models.Tournament
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var participation models.TournamentPlayer
	err := s.db.Where("tournament_id = ? AND player_id = ?", tournamentID, playerID).
		First(&participation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotStarted
		}
		return nil, err
	}
	if participation.CompleteDate != nil {
		return nil, ErrAlreadyCompleted
	}

	questions, err := s.tournamentQuestions(tournamentID)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{
		TournamentID:   tournamentID,
		TotalQuestions: len(questions),
		Incorrect:      []IncorrectAnswer{},
	}
	for _, q := range questions {
		submitted := answers[q.ID]
		if submitted == q.CorrectAnswer {
			result.CorrectCount++
			continue
		}
		result.Incorrect = append(result.Incorrect, IncorrectAnswer{
			QuestionID:      q.ID,
			Question:        q.Text,
			SubmittedAnswer: submitted,
			CorrectAnswer:   q.CorrectAnswer,
		})
	}

	completeDate := s.now().Format(dateLayout)
	updates := map[string]interface{}{
		"score":         result.CorrectCount,
		"complete_date": completeDate,
	}
	if err := s.db.Model(&participation).Updates(updates).Error; err != nil {
		return nil, err
	}

	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx, tournamentID)
	}
	return result, nil
}
