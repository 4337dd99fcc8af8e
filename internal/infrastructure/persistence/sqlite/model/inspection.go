package model

type Inspection struct {
	InspectionID    uint64   `gorm:"column:inspection_id;primaryKey;autoIncrement"`
	Reference       string   `gorm:"column:reference;type:text;not null;uniqueIndex"`
	EstablishmentID uint64   `gorm:"column:establishment_id;not null;index"`
	TemplateID      uint64   `gorm:"column:template_id;not null"`
	InspectionType  string   `gorm:"column:inspection_type;type:text;not null"`
	InspectorID     *string  `gorm:"column:inspector_id;type:text"`
	ScheduledDate   string   `gorm:"column:scheduled_date;type:text;not null;index"`
	Priority        string   `gorm:"column:priority;type:text;not null"`
	Status          string   `gorm:"column:status;type:text;not null;index"`
	StartedAt       *string  `gorm:"column:actual_start_datetime;type:text"`
	EndedAt         *string  `gorm:"column:actual_end_datetime;type:text"`
	OverallRating   *string  `gorm:"column:overall_rating;type:text"`
	InspectorNotes  *string  `gorm:"column:inspector_notes;type:text"`
	ScoreEarned     *int     `gorm:"column:score_earned"`
	ScoreTotal      *int     `gorm:"column:score_total"`
	ScorePercent    *float64 `gorm:"column:score_percent"`
	CreatedAt       string   `gorm:"column:created_at;type:text;not null"`
	UpdatedAt       string   `gorm:"column:updated_at;type:text;not null"`
}

func (Inspection) TableName() string {
	return "inspections"
}
