package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netqa-go/internal/model"
	"netqa-go/internal/repository"
	"netqa-go/pkg/apperrors"
	"netqa-go/pkg/testhelpers"
)

type fakeIndex struct {
	indexed  []model.KnowledgeDocument
	hits     []string
	indexErr error
	err      error
}

func (f *fakeIndex) Index(ctx context.Context, doc model.KnowledgeDocument) error {
	if f.indexErr != nil {
		return f.indexErr
	}
	f.indexed = append(f.indexed, doc)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, query string, size int) ([]string, error) {
	return f.hits, f.err
}

func newKnowledgeService(t *testing.T, index KnowledgeIndex) (KnowledgeService, repository.LedgerRepository) {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	ledger := repository.NewLedgerRepository(db)
	svc := NewKnowledgeService(repository.NewProtocolRepository(db), repository.NewKnowledgeRepository(db), ledger, index)
	return svc, ledger
}

func TestKnowledgeService_Protocols(t *testing.T) {
	svc, _ := newKnowledgeService(t, nil)
	ctx := context.Background()

	rfc := "RFC 2328"
	p, err := svc.CreateProtocol(ctx, "OSPF", &rfc)
	require.NoError(t, err)

	got, err := svc.GetProtocol(ctx, p.ProtocolID)
	require.NoError(t, err)
	assert.Equal(t, "OSPF", got.Name)
	assert.Equal(t, "RFC 2328", *got.RFCNumber)

	_, err = svc.GetProtocol(ctx, "missing")
	assert.ErrorIs(t, err, ErrProtocolNotFound)

	list, err := svc.ListProtocols(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestKnowledgeService_CreateKnowledge(t *testing.T) {
	index := &fakeIndex{}
	svc, _ := newKnowledgeService(t, index)
	ctx := context.Background()

	missing := "no-such-protocol"
	_, err := svc.CreateKnowledge(ctx, &missing, "content", nil)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, index.indexed)

	p, err := svc.CreateProtocol(ctx, "BGP", nil)
	require.NoError(t, err)
	k, err := svc.CreateKnowledge(ctx, &p.ProtocolID, "BGP uses TCP port 179", nil)
	require.NoError(t, err)
	require.Len(t, index.indexed, 1)
	assert.Equal(t, k.KnowledgeID, index.indexed[0].KnowledgeID)

	// 索引失败不影响创建
	index.indexErr = errors.New("es down")
	k2, err := svc.CreateKnowledge(ctx, nil, "standalone note", nil)
	require.NoError(t, err)
	got, err := svc.GetKnowledge(ctx, k2.KnowledgeID)
	require.NoError(t, err)
	assert.Equal(t, "standalone note", got.Content)

	_, err = svc.GetKnowledge(ctx, "missing")
	assert.ErrorIs(t, err, ErrKnowledgeNotFound)
}

func TestKnowledgeService_Search(t *testing.T) {
	index := &fakeIndex{}
	svc, _ := newKnowledgeService(t, index)
	ctx := context.Background()

	a, err := svc.CreateKnowledge(ctx, nil, "OSPF hello interval defaults to 10s", nil)
	require.NoError(t, err)
	b, err := svc.CreateKnowledge(ctx, nil, "OSPF dead interval is four times hello", nil)
	require.NoError(t, err)

	_, err = svc.SearchKnowledge(ctx, "  ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)

	// 索引给出的排序被保留
	index.hits = []string{b.KnowledgeID, "stale-id", a.KnowledgeID}
	got, err := svc.SearchKnowledge(ctx, "hello", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.KnowledgeID, got[0].KnowledgeID)
	assert.Equal(t, a.KnowledgeID, got[1].KnowledgeID)

	// 索引出错时退回数据库
	index.err = errors.New("timeout")
	got, err = svc.SearchKnowledge(ctx, "defaults", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.KnowledgeID, got[0].KnowledgeID)
}

func TestKnowledgeService_LinkSolutionKnowledge(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	ledger := repository.NewLedgerRepository(db)
	svc := NewKnowledgeService(repository.NewProtocolRepository(db), repository.NewKnowledgeRepository(db), ledger, nil)
	ctx := context.Background()

	user := registerUser(t, db, "judy")
	sol := askQuestion(t, db, user.UserID, "OSPF timers")
	k, err := svc.CreateKnowledge(ctx, nil, "hello 10s, dead 40s", nil)
	require.NoError(t, err)

	require.NoError(t, svc.LinkSolutionKnowledge(ctx, sol.SolutionID, k.KnowledgeID))
	// 重复引用是幂等的
	require.NoError(t, svc.LinkSolutionKnowledge(ctx, sol.SolutionID, k.KnowledgeID))

	got, err := ledger.FindSolutionByID(ctx, sol.SolutionID)
	require.NoError(t, err)
	require.Len(t, got.References, 1)
	assert.Equal(t, k.KnowledgeID, got.References[0].KnowledgeID)

	err = svc.LinkSolutionKnowledge(ctx, "missing", k.KnowledgeID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
