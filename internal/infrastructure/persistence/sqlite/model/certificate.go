package model

type Certificate struct {
	CertificateID     uint64  `gorm:"column:certificate_id;primaryKey;autoIncrement"`
	CertificateNumber string  `gorm:"column:certificate_number;type:text;not null;uniqueIndex"`
	EstablishmentID   uint64  `gorm:"column:establishment_id;not null;index"`
	InspectionID      uint64  `gorm:"column:inspection_id;not null;uniqueIndex"`
	CertificateType   string  `gorm:"column:certificate_type;type:text;not null"`
	IssueDate         string  `gorm:"column:issue_date;type:text;not null"`
	ExpiryDate        string  `gorm:"column:expiry_date;type:text;not null"`
	Status            string  `gorm:"column:status;type:text;not null"`
	Remarks           string  `gorm:"column:remarks;type:text;not null;default:''"`
	IssuedBy          string  `gorm:"column:issued_by;type:text;not null"`
	RevokedBy         *string `gorm:"column:revoked_by;type:text"`
	RevokedAt         *string `gorm:"column:revoked_at;type:text"`
	RevocationReason  *string `gorm:"column:revocation_reason;type:text"`
	CreatedAt         string  `gorm:"column:created_at;type:text;not null"`
	UpdatedAt         string  `gorm:"column:updated_at;type:text;not null"`
}

func (Certificate) TableName() string {
	return "certificates"
}
