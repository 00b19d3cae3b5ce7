package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"netqa-go/internal/model"
	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/log"
)

var (
	ErrInvalidRating     = fmt.Errorf("%w: rating must be between 1 and 5", apperrors.ErrBadRequest)
	ErrInvalidStatus     = fmt.Errorf("%w: status must be one of pending, in-progress, resolved", apperrors.ErrBadRequest)
	ErrFeedbackNotFound  = fmt.Errorf("%w: feedback not found", apperrors.ErrNotFound)
	ErrQuestionNotFound  = fmt.Errorf("%w: question not found", apperrors.ErrNotFound)
	ErrSolutionNotFound  = fmt.Errorf("%w: solution not found", apperrors.ErrNotFound)
	ErrMissingReferences = fmt.Errorf("%w: user_id, solution_id and rating are required", apperrors.ErrBadRequest)
)

// protocolKeywords 按匹配优先级排列，取问题内容中第一个出现的关键词作为分类。
var protocolKeywords = []string{
	"OSPF", "BGP", "RIP", "EIGRP", "VLAN", "STP", "RSTP", "MSTP",
	"ACL", "NAT", "VPN", "QoS", "MPLS", "VRRP", "HSRP", "GLBP",
	"DHCP", "DNS", "HTTP", "HTTPS", "FTP", "SMTP", "SNMP", "SSH",
	"TCP", "UDP", "ICMP", "ARP", "RARP", "IGMP", "PIM", "OSPFv3",
	"IPv4", "IPv6", "RIPng", "BGP4+", "IS-IS", "LDP", "RSVP",
}

const otherCategory = "其他"

// RatingBucket 是评分直方图中的一档。
type RatingBucket struct {
	Rating     int     `json:"rating"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// CategoryBucket 是按协议关键词统计的一类问题。
type CategoryBucket struct {
	Category   string  `json:"category"`
	Count      int64   `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FeedbackStats 是 /feedbacks/stats 的响应。
type FeedbackStats struct {
	TotalCount           int64            `json:"total_count"`
	AverageRating        float64          `json:"average_rating"`
	PendingCount         int64            `json:"pending_count"`
	RatingDistribution   []RatingBucket   `json:"rating_distribution"`
	CategoryDistribution []CategoryBucket `json:"category_distribution"`
}

// QuestionCategories 是 /questions/categories 的响应。
type QuestionCategories struct {
	TotalQuestions int64            `json:"total_questions"`
	Categories     []CategoryBucket `json:"categories"`
}

// FeedbackService 定义了反馈的创建、查询与统计。
type FeedbackService interface {
	Create(ctx context.Context, userID, solutionID string, rating int, comment *string) (*model.Feedback, error)
	List(ctx context.Context, skip, limit int) ([]model.FeedbackView, error)
	Stats(ctx context.Context) (*FeedbackStats, error)
	UpdateStatus(ctx context.Context, feedbackID, status string) error
	QuestionCategories(ctx context.Context) (*QuestionCategories, error)
	GetQuestion(ctx context.Context, questionID string) (*model.Question, error)
	GetSolution(ctx context.Context, solutionID string) (*model.Solution, error)
}

type feedbackService struct {
	ledger repository.LedgerRepository
}

// NewFeedbackService 创建一个新的 FeedbackService 实例。
func NewFeedbackService(ledger repository.LedgerRepository) FeedbackService {
	return &feedbackService{ledger: ledger}
}

func (s *feedbackService) Create(ctx context.Context, userID, solutionID string, rating int, comment *string) (*model.Feedback, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(solutionID) == "" {
		return nil, ErrMissingReferences
	}
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	f := &model.Feedback{
		FeedbackID: uuid.NewString(),
		UserID:     userID,
		SolutionID: solutionID,
		Rating:     rating,
		Comment:    comment,
		Status:     model.FeedbackStatusPending,
	}
	if err := s.ledger.CreateFeedback(ctx, f); err != nil {
		return nil, err
	}
	log.Infof("[FeedbackService] feedback %s created for solution %s", f.FeedbackID, solutionID)
	return f, nil
}

func (s *feedbackService) List(ctx context.Context, skip, limit int) ([]model.FeedbackView, error) {
	return s.ledger.ListFeedbacks(ctx, skip, limit)
}

func (s *feedbackService) UpdateStatus(ctx context.Context, feedbackID, status string) error {
	if !model.ValidFeedbackStatus(status) {
		return ErrInvalidStatus
	}
	if err := s.ledger.UpdateFeedbackStatus(ctx, feedbackID, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrFeedbackNotFound
		}
		return err
	}
	return nil
}

func (s *feedbackService) Stats(ctx context.Context) (*FeedbackStats, error) {
	agg, err := s.ledger.FeedbackAggregates(ctx)
	if err != nil {
		return nil, err
	}

	stats := &FeedbackStats{
		TotalCount:         agg.Total,
		AverageRating:      round(agg.Average, 2),
		PendingCount:       agg.Pending,
		RatingDistribution: make([]RatingBucket, 0, 5),
	}
	for rating := 1; rating <= 5; rating++ {
		n := agg.RatingCounts[rating]
		stats.RatingDistribution = append(stats.RatingDistribution, RatingBucket{
			Rating:     rating,
			Count:      n,
			Percentage: percentage(n, agg.Total),
		})
	}

	contents, err := s.ledger.ListQuestionContents(ctx)
	if err != nil {
		return nil, err
	}
	buckets, _ := categorize(contents)
	for i := range buckets {
		if buckets[i].Category == otherCategory {
			buckets[i].Category = "其他问题"
		} else {
			buckets[i].Category += "相关问题"
		}
	}
	stats.CategoryDistribution = buckets
	return stats, nil
}

func (s *feedbackService) QuestionCategories(ctx context.Context) (*QuestionCategories, error) {
	contents, err := s.ledger.ListQuestionContents(ctx)
	if err != nil {
		return nil, err
	}
	buckets, total := categorize(contents)
	return &QuestionCategories{TotalQuestions: total, Categories: buckets}, nil
}

func (s *feedbackService) GetQuestion(ctx context.Context, questionID string) (*model.Question, error) {
	q, err := s.ledger.FindQuestionByID(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *feedbackService) GetSolution(ctx context.Context, solutionID string) (*model.Solution, error) {
	sol, err := s.ledger.FindSolutionByID(ctx, solutionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSolutionNotFound
		}
		return nil, err
	}
	return sol, nil
}

// ClassifyQuestion 返回问题内容命中的第一个协议关键词，没有命中时返回 "其他"。
func ClassifyQuestion(content string) string {
	upper := strings.ToUpper(content)
	for _, kw := range protocolKeywords {
		if strings.Contains(upper, strings.ToUpper(kw)) {
			return kw
		}
	}
	return otherCategory
}

// categorize 统计非空问题的分类分布，按数量降序、名称升序排列。
func categorize(contents []string) ([]CategoryBucket, int64) {
	counts := make(map[string]int64)
	var total int64
	for _, c := range contents {
		if strings.TrimSpace(c) == "" {
			continue
		}
		total++
		counts[ClassifyQuestion(c)]++
	}

	buckets := make([]CategoryBucket, 0, len(counts))
	for category, n := range counts {
		buckets = append(buckets, CategoryBucket{
			Category:   category,
			Count:      n,
			Percentage: percentage(n, total),
		})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Category < buckets[j].Category
	})
	return buckets, total
}

func percentage(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round(float64(n)/float64(total)*100, 1)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
