package model

import "time"

// 反馈处理状态
const (
	FeedbackStatusPending    = "pending"
	FeedbackStatusInProgress = "in-progress"
	FeedbackStatusResolved   = "resolved"
)

// ValidFeedbackStatus 判断状态是否属于允许的枚举值。
func ValidFeedbackStatus(status string) bool {
	switch status {
	case FeedbackStatusPending, FeedbackStatusInProgress, FeedbackStatusResolved:
		return true
	}
	return false
}

// Feedback 对应 feedbacks 表。
type Feedback struct {
	FeedbackID string    `gorm:"column:feedback_id;type:varchar(255);primaryKey" json:"feedback_id"`
	UserID     string    `gorm:"column:user_id;type:varchar(255);not null;index" json:"user_id"`
	SolutionID string    `gorm:"column:solution_id;type:varchar(255);not null;index" json:"solution_id"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    *string   `gorm:"type:text" json:"comment"`
	Status     string    `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Feedback) TableName() string {
	return "feedbacks"
}

// FeedbackView 是反馈列表中带用户名的一行。
type FeedbackView struct {
	FeedbackID string    `json:"feedback_id"`
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	SolutionID string    `json:"solution_id"`
	Rating     int       `json:"rating"`
	Comment    *string   `json:"comment"`
	CreatedAt  LocalDate `json:"created_at"`
	Status     string    `json:"status"`
}
