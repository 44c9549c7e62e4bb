package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/iofh/quiz-app-heroku/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database limited to one connection so
// every query sees the same memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Tournament{},
		&models.Question{},
		&models.TournamentPlayer{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// testToday is the fixed clock used by service tests.
var testToday = time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testToday }

type stubProvider struct {
	questions []TriviaQuestion
	err       error
}

func (p *stubProvider) Fetch(ctx context.Context, category, difficulty string, count int) ([]TriviaQuestion, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.questions, nil
}

func makeTriviaQuestions(n int) []TriviaQuestion {
	questions := make([]TriviaQuestion, 0, n)
	for i := 0; i < n; i++ {
		questions = append(questions, TriviaQuestion{
			Text:          fmt.Sprintf("Question %d?", i+1),
			CorrectAnswer: fmt.Sprintf("right-%d", i+1),
			IncorrectAnswers: []string{
				fmt.Sprintf("wrong-%d-a", i+1),
				fmt.Sprintf("wrong-%d-b", i+1),
				fmt.Sprintf("wrong-%d-c", i+1),
			},
		})
	}
	return questions
}

func newTestTournamentService(db *gorm.DB) *TournamentService {
	s := NewTournamentService(db, &stubProvider{questions: makeTriviaQuestions(NumberOfQuestions)})
	s.now = fixedNow
	return s
}

func validInput() TournamentInput {
	return TournamentInput{
		Name:       "test Tournament",
		Category:   "21",
		Difficulty: "easy",
		StartDate:  "2020-06-02",
		EndDate:    "2020-06-26",
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "x", Role: models.RolePlayer}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return &user
}
