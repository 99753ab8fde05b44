package models

import "time"

// UserProfile is a registered bot user. Bookings require a profile; the
// rank/name and company fields feed booking summaries and POC lines.
type UserProfile struct {
	UserID      int64     `bson:"user_id" json:"user_id"`
	RankAndName string    `bson:"rank_and_name" json:"rank_and_name"`
	Company     string    `bson:"company" json:"company"`
	Username    string    `bson:"username" json:"username"`
	Admin       bool      `bson:"admin" json:"admin"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// DisplayName is the short form used in booking summaries.
func (u UserProfile) DisplayName() string {
	if u.Company == "" {
		return u.RankAndName
	}
	return u.RankAndName + " (" + u.Company + ")"
}
