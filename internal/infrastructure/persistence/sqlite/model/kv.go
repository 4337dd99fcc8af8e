package model

type ComplianceKV struct {
	Key       string `gorm:"column:key;type:text;not null;primaryKey"`
	Value     string `gorm:"column:value;type:text;not null"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (ComplianceKV) TableName() string {
	return "compliance_kv"
}
