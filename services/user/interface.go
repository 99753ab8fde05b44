package user

import "facilitybot/models"

// UserService manages bot user profiles.
type UserService interface {
	// Register creates or refreshes the caller's profile.
	Register(profile *models.UserProfile) error
	// Get returns the profile for a Telegram user ID, or nil if the user
	// has never registered.
	Get(userID int64) (*models.UserProfile, error)
	// GetByRankNameCompany resolves a profile from the admin booking
	// form's identity lines; nil when no such user is registered.
	GetByRankNameCompany(rankAndName, company string) (*models.UserProfile, error)
	// SyncUsername keeps the stored Telegram username current.
	SyncUsername(userID int64, username string) error
	IsAdmin(userID int64) bool
	ListAdmins() ([]models.UserProfile, error)
	SetAdmin(userID int64, admin bool) error
}
