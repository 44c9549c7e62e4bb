package models

import "time"

// TournamentPlayer records one player's participation in one tournament.
// The unique index makes session start an atomic create-if-absent: the loser
// of two concurrent starts hits the constraint instead of inserting a
// duplicate row.
type TournamentPlayer struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TournamentID uint      `gorm:"not null;uniqueIndex:idx_tournament_player" json:"tournament_id"`
	PlayerID     uint      `gorm:"not null;uniqueIndex:idx_tournament_player" json:"player_id"`
	Player       User      `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE" json:"player,omitempty"`
	Score        int       `gorm:"not null;default:0" json:"score"`
	CompleteDate *string   `gorm:"size:10" json:"complete_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
