package models

// User represents an account record. The stored password is a one-way digest,
// never the submitted plaintext, and is excluded from JSON responses.
type User struct {
	ID           int64  `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100);not null"`
	Email        string `json:"email" gorm:"type:varchar(255);not null"`
	PasswordHash string `json:"-" gorm:"type:varchar(64);not null"`
}
