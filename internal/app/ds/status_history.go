package ds

import "time"

// История смен статуса инструмента. Только добавление: строки никогда
// не изменяются и не удаляются, у первой записи FromStatus пустой
type InstrumentStatusHistory struct {
	ID           uint `gorm:"primaryKey"`
	InstrumentID uint `gorm:"not null;index"`

	FromStatus string `gorm:"type:varchar(100)"`
	ToStatus   string `gorm:"type:varchar(100);not null"`
	FromStage  int    `gorm:"not null;default:0"`
	ToStage    int    `gorm:"not null;default:0"`

	FormData *string `gorm:"type:jsonb"` // сериализованные поля формы этапа
	Remarks  *string

	RejectionReason *string

	IsResubmission       bool  `gorm:"not null;default:false"`
	PreviousInstrumentID *uint `gorm:"index"`

	ChangedBy     uint   `gorm:"not null;default:0"`
	ChangedByName string `gorm:"type:varchar(200)"`
	ChangedByRole string `gorm:"type:varchar(200)"`

	CreatedAt time.Time `gorm:"not null;index"`
}
