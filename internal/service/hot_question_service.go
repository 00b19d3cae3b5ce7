package service

import (
	"context"
	"fmt"
	"sort"

	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/log"
)

// ErrHotQuestionNotFound 表示点击的热门问题不在列表中。
var ErrHotQuestionNotFound = fmt.Errorf("%w: hot question not found", apperrors.ErrNotFound)

// HotQuestion 是首页展示的一个热门问题。
type HotQuestion struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Count    int64  `json:"count"`
}

// curatedHotQuestions 是预置的热门问题及其基础热度。
var curatedHotQuestions = []HotQuestion{
	{ID: "1", Question: "如何配置 OSPF 协议？", Count: 156},
	{ID: "2", Question: "BGP 路由通告失败的常见原因", Count: 142},
	{ID: "3", Question: "VLAN 间通信问题排查步骤", Count: 128},
	{ID: "4", Question: "ACL 规则配置最佳实践", Count: 115},
	{ID: "5", Question: "STP 根桥选举机制说明", Count: 98},
	{ID: "6", Question: "如何解决 DHCP 地址分配问题？", Count: 87},
	{ID: "7", Question: "VPN 隧道建立失败的排查方法", Count: 76},
	{ID: "8", Question: "IPv6 部署的关键步骤", Count: 65},
}

// HotQuestionService 提供热门问题列表与点击统计。
type HotQuestionService interface {
	List(ctx context.Context) []HotQuestion
	Click(ctx context.Context, questionID string) (*HotQuestion, error)
}

type hotQuestionService struct {
	repo repository.HotQuestionRepository
}

// NewHotQuestionService 创建服务。repo 为 nil 时只返回基础热度。
func NewHotQuestionService(repo repository.HotQuestionRepository) HotQuestionService {
	return &hotQuestionService{repo: repo}
}

// List 返回热门问题，热度为基础值加上点击次数，读取点击失败时降级为基础值。
func (s *hotQuestionService) List(ctx context.Context) []HotQuestion {
	clicks := map[string]int64{}
	if s.repo != nil {
		got, err := s.repo.GetClicks(ctx)
		if err != nil {
			log.Warnw("[HotQuestionService] load clicks failed", "error", err)
		} else {
			clicks = got
		}
	}

	list := make([]HotQuestion, len(curatedHotQuestions))
	for i, q := range curatedHotQuestions {
		q.Count += clicks[q.ID]
		list[i] = q
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Count != list[j].Count {
			return list[i].Count > list[j].Count
		}
		return list[i].ID < list[j].ID
	})
	return list
}

func (s *hotQuestionService) Click(ctx context.Context, questionID string) (*HotQuestion, error) {
	for _, q := range curatedHotQuestions {
		if q.ID != questionID {
			continue
		}
		if s.repo == nil {
			return &q, nil
		}
		n, err := s.repo.IncrementClick(ctx, questionID)
		if err != nil {
			return nil, err
		}
		q.Count += n
		return &q, nil
	}
	return nil, ErrHotQuestionNotFound
}
