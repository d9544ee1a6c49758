package models

import "time"

// Exercise is an instructor-authored translation task: a source text paired
// with the reference translation submissions are scored against. Exercises
// are immutable once created.
type Exercise struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Title                string    `gorm:"size:255" json:"title"`
	SourceText           string    `gorm:"type:text;not null" json:"source_text"`
	ReferenceTranslation string    `gorm:"type:text;not null" json:"reference_translation"`
	TargetLanguage       string    `gorm:"size:16" json:"target_language"`
	CreatedBy            uint      `gorm:"not null" json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
}
