package model

import "time"

// Question 对应 questions 表，记录用户提交的一次提问及其附件引用。
type Question struct {
	QuestionID string    `gorm:"column:question_id;type:varchar(255);primaryKey" json:"question_id"`
	UserID     string    `gorm:"column:user_id;type:varchar(255);not null;index" json:"user_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	ImageURL   *string   `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	FileURL    *string   `gorm:"column:file_url;type:varchar(512)" json:"file_url"`
	FileName   *string   `gorm:"column:file_name;type:varchar(255)" json:"file_name"`
	AskTime    time.Time `gorm:"column:ask_time;not null" json:"ask_time"`

	Solution *Solution `gorm:"foreignKey:QuestionID;references:QuestionID" json:"-"`
}

func (Question) TableName() string {
	return "questions"
}

// Solution 对应 solutions 表。每个 Question 至多一个 Solution。
type Solution struct {
	SolutionID      string    `gorm:"column:solution_id;type:varchar(255);primaryKey" json:"solution_id"`
	QuestionID      string    `gorm:"column:question_id;type:varchar(255);not null;uniqueIndex" json:"question_id"`
	Steps           string    `gorm:"type:text;not null" json:"steps"`
	ConfidenceScore float64   `gorm:"column:confidence_score;not null" json:"confidence_score"`
	CreatedAt       time.Time `gorm:"column:created_at;not null" json:"created_at"`

	Feedbacks  []Feedback  `gorm:"foreignKey:SolutionID;references:SolutionID" json:"-"`
	References []Knowledge `gorm:"many2many:solution_references_knowledge;joinForeignKey:SolutionID;joinReferences:KnowledgeID" json:"references"`
}

func (Solution) TableName() string {
	return "solutions"
}
