package model

// SequenceCounter backs reference-number allocation. The (scope, period)
// row is incremented atomically; read-max-then-insert is never used.
type SequenceCounter struct {
	Scope     string `gorm:"column:scope;type:text;not null;primaryKey"`
	Period    string `gorm:"column:period;type:text;not null;primaryKey"`
	Seq       uint64 `gorm:"column:seq;not null;default:0"`
	UpdatedAt string `gorm:"column:updated_at;type:text;not null"`
}

func (SequenceCounter) TableName() string {
	return "sequence_counters"
}
