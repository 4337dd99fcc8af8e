package model

type Establishment struct {
	EstablishmentID   uint64 `gorm:"column:establishment_id;primaryKey;autoIncrement"`
	Reference         string `gorm:"column:reference;type:text;not null;uniqueIndex"`
	Name              string `gorm:"column:name;type:text;not null"`
	EstablishmentType string `gorm:"column:establishment_type;type:text;not null"`
	OwnerName         string `gorm:"column:owner_name;type:text;not null"`
	Address           string `gorm:"column:address;type:text;not null"`
	RiskCategory      string `gorm:"column:risk_category;type:text;not null"`
	ComplianceStatus  string `gorm:"column:compliance_status;type:text;not null"`
	CreatedAt         string `gorm:"column:created_at;type:text;not null"`
	UpdatedAt         string `gorm:"column:updated_at;type:text;not null"`
}

func (Establishment) TableName() string {
	return "establishments"
}
