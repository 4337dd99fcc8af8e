package model

type Violation struct {
	ViolationID        uint64  `gorm:"column:violation_id;primaryKey;autoIncrement"`
	InspectionID       uint64  `gorm:"column:inspection_id;not null;index"`
	EstablishmentID    uint64  `gorm:"column:establishment_id;not null;index"`
	Category           string  `gorm:"column:category;type:text;not null"`
	Severity           string  `gorm:"column:severity;type:text;not null"`
	Description        string  `gorm:"column:description;type:text;not null"`
	Status             string  `gorm:"column:status;type:text;not null;index"`
	CorrectiveDeadline *string `gorm:"column:corrective_action_deadline;type:text"`
	ResolvedBy         *string `gorm:"column:resolved_by;type:text"`
	ResolutionNotes    *string `gorm:"column:resolution_notes;type:text"`
	ResolutionDate     *string `gorm:"column:resolution_date;type:text"`
	ReportedBy         string  `gorm:"column:reported_by;type:text;not null"`
	CreatedAt          string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt          string  `gorm:"column:updated_at;type:text;not null"`
}

func (Violation) TableName() string {
	return "violations"
}
