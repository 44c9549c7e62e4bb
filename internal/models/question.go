package models

// Question is one multiple-choice item. Exactly one of the four choice slots
// holds the correct answer; the slot is picked at random at import time.
type Question struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	TournamentID  uint   `gorm:"not null;index" json:"tournament_id"`
	Text          string `gorm:"type:text;not null" json:"question"`
	CorrectAnswer string `gorm:"size:500;not null" json:"correct_answer"`
	Choice1       string `gorm:"size:500;not null" json:"choice1"`
	Choice2       string `gorm:"size:500;not null" json:"choice2"`
	Choice3       string `gorm:"size:500;not null" json:"choice3"`
	Choice4       string `gorm:"size:500;not null" json:"choice4"`
}

func (q *Question) Choices() []string {
	return []string{q.Choice1, q.Choice2, q.Choice3, q.Choice4}
}
