package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"netqa-go/internal/model"
	"netqa-go/pkg/apperrors"
)

const (
	solutionReferencesTable = "solution_references_knowledge"
	// MySQL 方言下 time.Time 列为 datetime(3)
	timestampPrecision = time.Millisecond
)

// FeedbackAggregates 是反馈统计所需的聚合值。
type FeedbackAggregates struct {
	Total        int64
	Average      float64
	Pending      int64
	RatingCounts map[int]int64
}

// LedgerRepository 负责 Question、Solution、Feedback 的持久化及其引用约束。
type LedgerRepository interface {
	// CreateQuestionWithSolution 在同一事务中写入问题与对应的解答。
	CreateQuestionWithSolution(ctx context.Context, q *model.Question, s *model.Solution) error
	FindQuestionByID(ctx context.Context, questionID string) (*model.Question, error)
	FindSolutionByID(ctx context.Context, solutionID string) (*model.Solution, error)
	LinkKnowledge(ctx context.Context, solutionID, knowledgeID string) error
	ListQuestionContents(ctx context.Context) ([]string, error)

	CreateFeedback(ctx context.Context, f *model.Feedback) error
	FindFeedbackByID(ctx context.Context, feedbackID string) (*model.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, feedbackID, status string) error
	ListFeedbacks(ctx context.Context, offset, limit int) ([]model.FeedbackView, error)
	FeedbackAggregates(ctx context.Context) (*FeedbackAggregates, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository 创建一个新的 LedgerRepository 实例。
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) CreateQuestionWithSolution(ctx context.Context, q *model.Question, s *model.Solution) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// datetime(3) 只保留毫秒，先截断再保证解答时间严格晚于提问时间
		q.AskTime = q.AskTime.Truncate(timestampPrecision)
		s.CreatedAt = s.CreatedAt.Truncate(timestampPrecision)
		if !s.CreatedAt.After(q.AskTime) {
			s.CreatedAt = q.AskTime.Add(timestampPrecision)
		}
		if err := tx.Omit(clause.Associations).Create(q).Error; err != nil {
			return fmt.Errorf("create question: %w", err)
		}
		s.QuestionID = q.QuestionID
		if err := tx.Omit(clause.Associations).Create(s).Error; err != nil {
			return fmt.Errorf("create solution: %w", err)
		}
		return nil
	})
}

func (r *ledgerRepository) FindQuestionByID(ctx context.Context, questionID string) (*model.Question, error) {
	var q model.Question
	if err := r.db.WithContext(ctx).Where("question_id = ?", questionID).First(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// FindSolutionByID 查询解答并预加载其引用的知识条目。
func (r *ledgerRepository) FindSolutionByID(ctx context.Context, solutionID string) (*model.Solution, error) {
	var s model.Solution
	err := r.db.WithContext(ctx).
		Preload("References").
		Where("solution_id = ?", solutionID).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	if s.References == nil {
		s.References = []model.Knowledge{}
	}
	return &s, nil
}

// LinkKnowledge 记录解答引用了某个知识条目，重复关联不报错。
func (r *ledgerRepository) LinkKnowledge(ctx context.Context, solutionID, knowledgeID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &model.Solution{}, "solution_id", "solution", solutionID); err != nil {
			return err
		}
		if err := requireExists(tx, &model.Knowledge{}, "knowledge_id", "knowledge", knowledgeID); err != nil {
			return err
		}
		return tx.Table(solutionReferencesTable).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(map[string]interface{}{
				"solution_id":  solutionID,
				"knowledge_id": knowledgeID,
			}).Error
	})
}

func (r *ledgerRepository) ListQuestionContents(ctx context.Context) ([]string, error) {
	var contents []string
	err := r.db.WithContext(ctx).Model(&model.Question{}).Pluck("content", &contents).Error
	return contents, err
}

// CreateFeedback 在事务中确认 user 与 solution 均存在后再写入反馈。
func (r *ledgerRepository) CreateFeedback(ctx context.Context, f *model.Feedback) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireExists(tx, &model.User{}, "user_id", "user", f.UserID); err != nil {
			return err
		}
		if err := requireExists(tx, &model.Solution{}, "solution_id", "solution", f.SolutionID); err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Create(f).Error
	})
}

func (r *ledgerRepository) FindFeedbackByID(ctx context.Context, feedbackID string) (*model.Feedback, error) {
	var f model.Feedback
	if err := r.db.WithContext(ctx).Where("feedback_id = ?", feedbackID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateFeedbackStatus 更新反馈状态；记录不存在时返回 gorm.ErrRecordNotFound。
func (r *ledgerRepository) UpdateFeedbackStatus(ctx context.Context, feedbackID, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Feedback{}).
		Where("feedback_id = ?", feedbackID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// 状态未变化时部分数据库也会返回 0，再确认一次记录是否存在
		var n int64
		if err := r.db.WithContext(ctx).Model(&model.Feedback{}).Where("feedback_id = ?", feedbackID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}

type feedbackRow struct {
	FeedbackID string
	UserID     string
	UserName   string
	SolutionID string
	Rating     int
	Comment    *string
	CreatedAt  time.Time
	Status     string
}

// ListFeedbacks 按创建时间倒序分页返回反馈，并带上提交者用户名。
func (r *ledgerRepository) ListFeedbacks(ctx context.Context, offset, limit int) ([]model.FeedbackView, error) {
	var rows []feedbackRow
	err := r.db.WithContext(ctx).
		Table("feedbacks AS f").
		Select("f.feedback_id, f.user_id, u.username AS user_name, f.solution_id, f.rating, f.comment, f.created_at, f.status").
		Joins("JOIN users AS u ON u.user_id = f.user_id").
		Order("f.created_at DESC, f.feedback_id ASC").
		Offset(offset).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	views := make([]model.FeedbackView, 0, len(rows))
	for _, row := range rows {
		views = append(views, model.FeedbackView{
			FeedbackID: row.FeedbackID,
			UserID:     row.UserID,
			UserName:   row.UserName,
			SolutionID: row.SolutionID,
			Rating:     row.Rating,
			Comment:    row.Comment,
			CreatedAt:  model.LocalDate(row.CreatedAt),
			Status:     row.Status,
		})
	}
	return views, nil
}

func (r *ledgerRepository) FeedbackAggregates(ctx context.Context) (*FeedbackAggregates, error) {
	db := r.db.WithContext(ctx)
	agg := &FeedbackAggregates{RatingCounts: make(map[int]int64)}

	if err := db.Model(&model.Feedback{}).Count(&agg.Total).Error; err != nil {
		return nil, err
	}
	if agg.Total == 0 {
		return agg, nil
	}

	var avg struct{ Average float64 }
	if err := db.Model(&model.Feedback{}).Select("AVG(rating) AS average").Scan(&avg).Error; err != nil {
		return nil, err
	}
	agg.Average = avg.Average

	if err := db.Model(&model.Feedback{}).Where("status = ?", model.FeedbackStatusPending).Count(&agg.Pending).Error; err != nil {
		return nil, err
	}

	var buckets []struct {
		Rating int
		Count  int64
	}
	if err := db.Model(&model.Feedback{}).Select("rating, COUNT(*) AS count").Group("rating").Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, b := range buckets {
		agg.RatingCounts[b.Rating] = b.Count
	}
	return agg, nil
}

// requireExists 在事务内确认被引用的记录存在。
func requireExists(tx *gorm.DB, m interface{}, column, reference, id string) error {
	var n int64
	if err := tx.Model(m).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return &apperrors.ReferenceNotFoundError{Reference: reference, ID: id}
	}
	return nil
}
