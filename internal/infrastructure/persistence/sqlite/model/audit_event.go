package model

type AuditEvent struct {
	AuditID    uint64 `gorm:"column:audit_id;primaryKey;autoIncrement"`
	EntityKind string `gorm:"column:entity_kind;type:text;not null;index:idx_audit_entity"`
	EntityRef  string `gorm:"column:entity_ref;type:text;not null;index:idx_audit_entity"`
	Action     string `gorm:"column:action;type:text;not null"`
	Actor      string `gorm:"column:actor;type:text;not null"`
	Detail     string `gorm:"column:detail;type:text;not null;default:''"`
	CreatedAt  string `gorm:"column:created_at;type:text;not null"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
