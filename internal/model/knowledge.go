package model

import "time"

// Protocol 对应 protocols 表，例如 BGP、OSPF。
type Protocol struct {
	ProtocolID string  `gorm:"column:protocol_id;type:varchar(255);primaryKey" json:"protocol_id"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	RFCNumber  *string `gorm:"column:rfc_number;type:varchar(50)" json:"rfc_number"`

	Knowledge []Knowledge `gorm:"foreignKey:ProtocolID;references:ProtocolID" json:"-"`
}

func (Protocol) TableName() string {
	return "protocols"
}

// Knowledge 对应 knowledge 表，是可被 Solution 引用的参考资料。
type Knowledge struct {
	KnowledgeID string    `gorm:"column:knowledge_id;type:varchar(255);primaryKey" json:"knowledge_id"`
	ProtocolID  *string   `gorm:"column:protocol_id;type:varchar(255);index" json:"protocol_id"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Source      *string   `gorm:"type:varchar(255)" json:"source"`
	UpdateTime  time.Time `gorm:"column:update_time;autoUpdateTime" json:"update_time"`
}

func (Knowledge) TableName() string {
	return "knowledge"
}
