package user

import (
	"fmt"
	"strings"

	userRepo "facilitybot/database/repository/user"
	"facilitybot/models"
	"facilitybot/utils"

	"go.uber.org/zap"
)

// DefaultUserService implements UserService over the profile repository.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

func (s *DefaultUserService) Register(profile *models.UserProfile) error {
	profile.RankAndName = strings.ToUpper(strings.TrimSpace(profile.RankAndName))
	profile.Company = strings.ToUpper(strings.TrimSpace(profile.Company))
	if profile.RankAndName == "" || profile.Company == "" {
		return fmt.Errorf("profile requires rank/name and company")
	}
	if err := s.Repo.Upsert(profile); err != nil {
		return fmt.Errorf("register user %d: %w", profile.UserID, err)
	}
	return nil
}

func (s *DefaultUserService) Get(userID int64) (*models.UserProfile, error) {
	return s.Repo.GetByID(userID)
}

func (s *DefaultUserService) GetByRankNameCompany(rankAndName, company string) (*models.UserProfile, error) {
	return s.Repo.GetByRankNameCompany(
		strings.ToUpper(strings.TrimSpace(rankAndName)),
		strings.ToUpper(strings.TrimSpace(company)),
	)
}

func (s *DefaultUserService) SyncUsername(userID int64, username string) error {
	return s.Repo.UpdateUsername(userID, username)
}

// IsAdmin treats any lookup failure as "not an admin".
func (s *DefaultUserService) IsAdmin(userID int64) bool {
	profile, err := s.Repo.GetByID(userID)
	if err != nil {
		utils.GetLogger().Warn("admin lookup failed",
			zap.Int64("userID", userID), zap.Error(err))
		return false
	}
	return profile != nil && profile.Admin
}

func (s *DefaultUserService) ListAdmins() ([]models.UserProfile, error) {
	return s.Repo.ListAdmins()
}

func (s *DefaultUserService) SetAdmin(userID int64, admin bool) error {
	return s.Repo.SetAdmin(userID, admin)
}
