package services

import (
	"context"
	"errors"
	"testing"

	"github.com/iofh/quiz-app-heroku/internal/models"

	"gorm.io/gorm"
)

func newTestQuizService(db *gorm.DB) *QuizService {
	s := NewQuizService(db, nil)
	s.now = fixedNow
	return s
}

func createTestTournament(t *testing.T, db *gorm.DB) *models.Tournament {
	t.Helper()
	tournament, err := newTestTournamentService(db).Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("failed to create tournament: %v", err)
	}
	return tournament
}

func TestStartCreatesParticipation(t *testing.T) {
	db := newTestDB(t)
	tournament := createTestTournament(t, db)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	result, err := quiz.Start(tournament.ID, user.ID)
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if len(result.Questions) != NumberOfQuestions {
		t.Fatalf("expected %d questions, got %d", NumberOfQuestions, len(result.Questions))
	}
	for _, q := range result.Questions {
		if len(q.Choices) != 4 {
			t.Fatalf("question %d: expected 4 choices, got %d", q.ID, len(q.Choices))
		}
	}

	var participation models.TournamentPlayer
	err = db.Where("tournament_id = ? AND player_id = ?", tournament.ID, user.ID).
		First(&participation).Error
	if err != nil {
		t.Fatalf("participation row missing: %v", err)
	}
	if participation.Score != 0 || participation.CompleteDate != nil {
		t.Fatalf("expected fresh participation, got %+v", participation)
	}
}

func TestStartTwiceRefused(t *testing.T) {
	db := newTestDB(t)
	tournament := createTestTournament(t, db)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	if _, err := quiz.Start(tournament.ID, user.ID); err != nil {
		t.Fatalf("first start failed: %v", err)
	}
	if _, err := quiz.Start(tournament.ID, user.ID); !errors.Is(err, ErrAlreadyTaken) {
		t.Fatalf("expected already taken, got %v", err)
	}

	var count int64
	db.Model(&models.TournamentPlayer{}).
		Where("tournament_id = ? AND player_id = ?", tournament.ID, user.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 participation row, got %d", count)
	}
}

func TestStartStorageFaultNotReportedAsTaken(t *testing.T) {
	db := newTestDB(t)
	tournament := createTestTournament(t, db)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	// Fail the insert itself while the existence check stays healthy.
	err := db.Exec(`CREATE TRIGGER fail_participation_insert
		BEFORE INSERT ON tournament_players
		BEGIN SELECT RAISE(FAIL, 'disk I/O error'); END;`).Error
	if err != nil {
		t.Fatalf("failed to create trigger: %v", err)
	}

	_, err = quiz.Start(tournament.ID, user.ID)
	if err == nil {
		t.Fatal("expected start to fail")
	}
	if errors.Is(err, ErrAlreadyTaken) {
		t.Fatalf("storage fault misreported as already taken: %v", err)
	}
}

func TestStartUnknownTournament(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	if _, err := quiz.Start(999, user.ID); !errors.Is(err, ErrTournamentNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func correctAnswers(t *testing.T, db *gorm.DB, tournamentID uint) map[uint]string {
	t.Helper()
	var questions []models.Question
	if err := db.Where("tournament_id = ?", tournamentID).Find(&questions).Error; err != nil {
		t.Fatalf("failed to load questions: %v", err)
	}
	answers := make(map[uint]string, len(questions))
	for _, q := range questions {
		answers[q.ID] = q.CorrectAnswer
	}
	return answers
}

func TestSubmitAllCorrect(t *testing.T) {
	db := newTestDB(t)
	tournament := createTestTournament(t, db)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	if _, err := quiz.Start(tournament.ID, user.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	answers := correctAnswers(t, db, tournament.ID)
	result, err := quiz.Submit(context.Background(), tournament.ID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.CorrectCount != NumberOfQuestions {
		t.Fatalf("expected %d correct, got %d", NumberOfQuestions, result.CorrectCount)
	}
	if len(result.Incorrect) != 0 {
		t.Fatalf("expected empty incorrect list, got %d entries", len(result.Incorrect))
	}

	var participation models.TournamentPlayer
	db.Where("tournament_id = ? AND player_id = ?", tournament.ID, user.ID).First(&participation)
	if participation.Score != NumberOfQuestions {
		t.Fatalf("expected stored score %d, got %d", NumberOfQuestions, participation.Score)
	}
	if participation.CompleteDate == nil || *participation.CompleteDate != "2020-06-01" {
		t.Fatalf("expected completion date 2020-06-01, got %v", participation.CompleteDate)
	}
}

func TestSubmitCountsMismatches(t *testing.T) {
	db := newTestDB(t)
	tournament := createTestTournament(t, db)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	if _, err := quiz.Start(tournament.ID, user.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	answers := correctAnswers(t, db, tournament.ID)
	wrongIDs := make(map[uint]bool)
	wrongCount := 0
	for id := range answers {
		if wrongCount == 3 {
			break
		}
		answers[id] = "definitely wrong"
		wrongIDs[id] = true
		wrongCount++
	}

	result, err := quiz.Submit(context.Background(), tournament.ID, user.ID, answers)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.CorrectCount != NumberOfQuestions-3 {
		t.Fatalf("expected %d correct, got %d", NumberOfQuestions-3, result.CorrectCount)
	}
	if len(result.Incorrect) != 3 {
		t.Fatalf("expected 3 incorrect entries, got %d", len(result.Incorrect))
	}
	for _, entry := range result.Incorrect {
		if !wrongIDs[entry.QuestionID] {
			t.Fatalf("unexpected question %d in incorrect list", entry.QuestionID)
		}
		if entry.SubmittedAnswer != "definitely wrong" {
			t.Fatalf("expected submitted answer to round-trip, got %q", entry.SubmittedAnswer)
		}
	}

	// Score stays within [0, question count].
	if result.CorrectCount < 0 || result.CorrectCount > result.TotalQuestions {
		t.Fatalf("score %d out of bounds [0, %d]", result.CorrectCount, result.TotalQuestions)
	}
}

func TestSubmitWithoutStart(t *testing.T) {
	db := newTestDB(t)
	tournament := createTestTournament(t, db)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	_, err := quiz.Submit(context.Background(), tournament.ID, user.ID, map[uint]string{})
	if !errors.Is(err, ErrNotStarted) {
		t.Fatalf("expected not started, got %v", err)
	}
}

func TestSubmitTwiceRefused(t *testing.T) {
	db := newTestDB(t)
	tournament := createTestTournament(t, db)
	user := createUser(t, db, "alice")
	quiz := newTestQuizService(db)

	if _, err := quiz.Start(tournament.ID, user.ID); err != nil {
		t.Fatalf("start failed: %v", err)
	}

	answers := correctAnswers(t, db, tournament.ID)
	if _, err := quiz.Submit(context.Background(), tournament.ID, user.ID, answers); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	_, err := quiz.Submit(context.Background(), tournament.ID, user.ID, answers)
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("expected already completed, got %v", err)
	}
}
