package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iofh/quiz-app-heroku/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const highscoreTTL = 30 * time.Second

// LeaderboardService serves the read-only projections: tournament listings,
// question listings and per-tournament highscores. Highscores are cached in
// redis when a client is configured; cache is nil-safe.
type LeaderboardService struct {
	db     *gorm.DB
	cache  *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewLeaderboardService(db *gorm.DB, cache *redis.Client, logger *slog.Logger) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardService{db: db, cache: cache, logger: logger, now: time.Now}
}

func (s *LeaderboardService) today() string {
	return s.now().Format(dateLayout)
}

func (s *LeaderboardService) ListAll() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := s.db.Order("id ASC").Find(&tournaments).Error
	return tournaments, err
}

func (s *LeaderboardService) ListOngoing() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	today := s.today()
	err := s.db.Where("start_date <= ? AND end_date >= ?", today, today).
		Order("id ASC").Find(&tournaments).Error
	return tournaments, err
}

func (s *LeaderboardService) ListUpcoming() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := s.db.Where("start_date >= ?", s.today()).Order("id ASC").Find(&tournaments).Error
	return tournaments, err
}

func (s *LeaderboardService) ListPast() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := s.db.Where("end_date <= ?", s.today()).Order("id ASC").Find(&tournaments).Error
	return tournaments, err
}

// Questions lists a tournament's questions for players, projected without
// the correct answer.
func (s *LeaderboardService) Questions(tournamentID uint) ([]QuizQuestion, error) {
	var tournament models.Tournament
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var questions []models.Question
	err := s.db.Where("tournament_id = ?", tournamentID).Order("id ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}

	listing := make([]QuizQuestion, 0, len(questions))
	for _, q := range questions {
		listing = append(listing, QuizQuestion{
			ID:      q.ID,
			Text:    q.Text,
			Choices: q.Choices(),
		})
	}
	return listing, nil
}

type HighscoreEntry struct {
	Player       string  `json:"player"`
	Score        int     `json:"score"`
	CompleteDate *string `json:"complete_date,omitempty"`
}

type Highscore struct {
	TournamentID uint             `json:"tournament_id"`
	Entries      []HighscoreEntry `json:"entries"`
	TotalTaken   int              `json:"total_taken"`
	AverageScore float64          `json:"average_score"`
}

func highscoreKey(tournamentID uint) string {
	return fmt.Sprintf("highscore:%d", tournamentID)
}

// Highscore lists a tournament's players ordered by descending score with
// the participant count and average score.
func (s *LeaderboardService) Highscore(ctx context.Context, tournamentID uint) (*Highscore, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, highscoreKey(tournamentID)).Result()
		if err == nil {
			var cached Highscore
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var tournament models.Tournament
	if err := s.db.First(&tournament, tournamentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var players []models.TournamentPlayer
	err := s.db.Where("tournament_id = ?", tournamentID).
		Preload("Player").
		Order("score DESC").
		Find(&players).Error
	if err != nil {
		return nil, err
	}

	highscore := &Highscore{
		TournamentID: tournamentID,
		Entries:      []HighscoreEntry{},
		TotalTaken:   len(players),
	}
	total := 0
	for _, p := range players {
		total += p.Score
		highscore.Entries = append(highscore.Entries, HighscoreEntry{
			Player:       p.Player.Username,
			Score:        p.Score,
			CompleteDate: p.CompleteDate,
		})
	}
	if len(players) > 0 {
		highscore.AverageScore = float64(total) / float64(len(players))
	}

	if s.cache != nil {
		if raw, err := json.Marshal(highscore); err == nil {
			if err := s.cache.Set(ctx, highscoreKey(tournamentID), raw, highscoreTTL).Err(); err != nil {
				s.logger.Warn("highscore cache write failed", "tournament_id", tournamentID, "err", err)
			}
		}
	}
	return highscore, nil
}

// Invalidate drops the cached highscore after a score changes.
func (s *LeaderboardService) Invalidate(ctx context.Context, tournamentID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, highscoreKey(tournamentID)).Err(); err != nil {
		s.logger.Warn("highscore cache invalidation failed", "tournament_id", tournamentID, "err", err)
	}
}
