package userRepo

import "facilitybot/models"

// UserRepository defines persistence for user profiles.
type UserRepository interface {
	// Upsert creates a profile or replaces the mutable fields of an
	// existing one, keyed by Telegram user ID.
	Upsert(profile *models.UserProfile) error
	GetByID(userID int64) (*models.UserProfile, error)
	GetByRankNameCompany(rankAndName, company string) (*models.UserProfile, error)
	UpdateUsername(userID int64, username string) error
	ListAdmins() ([]models.UserProfile, error)
	SetAdmin(userID int64, admin bool) error
}
