package models

import "time"

// Category codes match the trivia provider's category ids.
var Categories = map[string]string{
	"21": "Sports",
	"22": "Geography",
	"23": "History",
	"25": "Art",
}

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Dates are stored as YYYY-MM-DD strings so range filters compare the same
// way on postgres and on the sqlite test store.
type Tournament struct {
	ID         uint               `gorm:"primaryKey" json:"id"`
	Name       string             `gorm:"size:100;not null" json:"name"`
	Category   string             `gorm:"size:10;not null" json:"category"`
	Difficulty string             `gorm:"size:20;not null" json:"difficulty"`
	StartDate  string             `gorm:"size:10;not null" json:"start_date"`
	EndDate    string             `gorm:"size:10;not null" json:"end_date"`
	Questions  []Question         `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Players    []TournamentPlayer `gorm:"foreignKey:TournamentID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func ValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

func ValidCategory(c string) bool {
	_, ok := Categories[c]
	return ok
}
