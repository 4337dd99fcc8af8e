package model

type ChecklistTemplate struct {
	TemplateID     uint64 `gorm:"column:template_id;primaryKey;autoIncrement"`
	Code           string `gorm:"column:code;type:text;not null;uniqueIndex:idx_template_code_version"`
	InspectionType string `gorm:"column:inspection_type;type:text;not null;index"`
	Version        int    `gorm:"column:version;not null;uniqueIndex:idx_template_code_version"`
	Status         string `gorm:"column:status;type:text;not null"`
	CreatedAt      string `gorm:"column:created_at;type:text;not null"`
}

func (ChecklistTemplate) TableName() string {
	return "checklist_templates"
}

type ChecklistItem struct {
	ItemID      uint64 `gorm:"column:item_id;primaryKey;autoIncrement"`
	TemplateID  uint64 `gorm:"column:template_id;not null;index"`
	Category    string `gorm:"column:category;type:text;not null"`
	Requirement string `gorm:"column:requirement;type:text;not null"`
	Mandatory   bool   `gorm:"column:mandatory;not null;default:0"`
	Points      int    `gorm:"column:points;not null"`
	SortOrder   int    `gorm:"column:sort_order;not null"`
}

func (ChecklistItem) TableName() string {
	return "checklist_items"
}
