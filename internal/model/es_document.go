package model

// KnowledgeDocument 是写入 Elasticsearch 的知识条目结构。
type KnowledgeDocument struct {
	KnowledgeID string `json:"knowledge_id"`
	ProtocolID  string `json:"protocol_id,omitempty"`
	Content     string `json:"content"`
	Source      string `json:"source,omitempty"`
}

// NewKnowledgeDocument 由数据库记录构造索引文档。
func NewKnowledgeDocument(k *Knowledge) KnowledgeDocument {
	doc := KnowledgeDocument{KnowledgeID: k.KnowledgeID, Content: k.Content}
	if k.ProtocolID != nil {
		doc.ProtocolID = *k.ProtocolID
	}
	if k.Source != nil {
		doc.Source = *k.Source
	}
	return doc
}
