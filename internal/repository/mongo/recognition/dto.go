package recognition

import "hrm/backend/internal/entity"

type CreateRequest struct {
	Recipient  string `json:"recipient"  form:"recipient"`
	Message    string `json:"message"    form:"message"`
	Badge      string `json:"badge"      form:"badge"`
	BadgeColor string `json:"badgeColor" form:"badgeColor"`
}

type GetListResponse struct {
	entity.Recognition
	Recipient *entity.UserRef `json:"recipient,omitempty"`
	Giver     *entity.UserRef `json:"giver,omitempty"`
}

type LeaderboardEntry struct {
	User  *entity.UserRef `json:"user"`
	Count int             `json:"count"`
}

type StatsResponse struct {
	TotalCount         int64              `json:"totalCount"`
	Leaderboard        []LeaderboardEntry `json:"leaderboard"`
	RecentRecognitions []GetListResponse  `json:"recentRecognitions"`
}

type UserStatsResponse struct {
	Received             int64             `json:"received"`
	Given                int64             `json:"given"`
	ReceivedRecognitions []GetListResponse `json:"receivedRecognitions"`
}
