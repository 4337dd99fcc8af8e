package model

type ChecklistResponse struct {
	InspectionID uint64 `gorm:"column:inspection_id;not null;primaryKey"`
	ItemID       uint64 `gorm:"column:item_id;not null;primaryKey"`
	Response     string `gorm:"column:response;type:text;not null"`
	Notes        string `gorm:"column:notes;type:text;not null;default:''"`
	Evidence     string `gorm:"column:evidence;type:text;not null;default:''"`
	RecordedBy   string `gorm:"column:recorded_by;type:text;not null"`
	RecordedAt   string `gorm:"column:recorded_at;type:text;not null"`
}

func (ChecklistResponse) TableName() string {
	return "inspection_checklist_responses"
}
