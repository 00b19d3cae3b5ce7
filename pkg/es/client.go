// Package es 提供了知识条目在 Elasticsearch 中的索引与检索。
package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"netqa-go/internal/config"
	"netqa-go/internal/model"
	"netqa-go/pkg/log"
)

const knowledgeMapping = `{
	"mappings": {
		"properties": {
			"knowledge_id": { "type": "keyword" },
			"protocol_id": { "type": "keyword" },
			"content": { "type": "text" },
			"source": { "type": "keyword" }
		}
	}
}`

// KnowledgeIndex 封装了知识库索引的读写。
type KnowledgeIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewKnowledgeIndex 创建 Elasticsearch 客户端。
func NewKnowledgeIndex(cfg config.ElasticsearchConfig) (*KnowledgeIndex, error) {
	var addresses []string
	for _, a := range strings.Split(cfg.Addresses, ",") {
		if a = strings.TrimSpace(a); a != "" {
			addresses = append(addresses, a)
		}
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &KnowledgeIndex{client: client, index: cfg.IndexName}, nil
}

// EnsureIndex 检查索引是否存在，如果不存在则创建它。
func (k *KnowledgeIndex) EnsureIndex(ctx context.Context) error {
	res, err := k.client.Indices.Exists([]string{k.index}, k.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("检查索引是否存在时出错: %w", err)
	}
	res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		log.Infof("索引 '%s' 已存在", k.index)
		return nil
	case http.StatusNotFound:
	default:
		return fmt.Errorf("检查索引 '%s' 时收到意外的状态码: %d", k.index, res.StatusCode)
	}

	res, err = k.client.Indices.Create(
		k.index,
		k.client.Indices.Create.WithContext(ctx),
		k.client.Indices.Create.WithBody(strings.NewReader(knowledgeMapping)),
	)
	if err != nil {
		return fmt.Errorf("创建索引 '%s' 失败: %w", k.index, err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("创建索引 '%s' 时 Elasticsearch 返回错误: %s", k.index, res.String())
	}

	log.Infof("索引 '%s' 创建成功", k.index)
	return nil
}

// Index 写入或覆盖一条知识文档。
func (k *KnowledgeIndex) Index(ctx context.Context, doc model.KnowledgeDocument) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	req := esapi.IndexRequest{
		Index:      k.index,
		DocumentID: doc.KnowledgeID,
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}
	res, err := req.Do(ctx, k.client)
	if err != nil {
		return fmt.Errorf("index knowledge %s: %w", doc.KnowledgeID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index knowledge %s: %s", doc.KnowledgeID, res.String())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID string `json:"_id"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search 对 content 字段做全文检索，按相关度返回知识 ID。
func (k *KnowledgeIndex) Search(ctx context.Context, query string, size int) ([]string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"size": size,
		"query": map[string]interface{}{
			"match": map[string]interface{}{
				"content": query,
			},
		},
		"_source": false,
	})
	if err != nil {
		return nil, err
	}

	res, err := k.client.Search(
		k.client.Search.WithContext(ctx),
		k.client.Search.WithIndex(k.index),
		k.client.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search knowledge: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search knowledge: %s", res.String())
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	ids := make([]string, 0, len(sr.Hits.Hits))
	for _, h := range sr.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
