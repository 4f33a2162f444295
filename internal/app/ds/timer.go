package ds

import "time"

// Этапы таймеров процесса тендера, которыми управляет этот сервис
const (
	TimerStageTenderApproval    = "tender_approval"
	TimerStageRfqSent           = "rfq_sent"
	TimerStageEmdRequested      = "emd_requested"
	TimerStagePhysicalDocs      = "physical_docs"
	TimerStageDocumentChecklist = "document_checklist"
	TimerStageCostingSheets     = "costing_sheets"
)

// Трекер таймера этапа. Планированием занимается отдельная подсистема,
// здесь только запуск/остановка строк
type TimerTracker struct {
	ID         uint   `gorm:"primaryKey"`
	EntityType string `gorm:"type:varchar(30);not null;uniqueIndex:idx_timer_entity_stage"`
	EntityID   uint   `gorm:"not null;uniqueIndex:idx_timer_entity_stage"`
	Stage      string `gorm:"type:varchar(50);not null;uniqueIndex:idx_timer_entity_stage"`

	Status          string `gorm:"type:varchar(20);not null;default:'running'"` // running, stopped
	TimerType       string `gorm:"type:varchar(30);not null;default:'FIXED_DURATION'"`
	AllocatedTimeMs int64  `gorm:"not null"`

	StartedAt  time.Time `gorm:"not null"`
	DeadlineAt time.Time `gorm:"not null"`
	StoppedAt  *time.Time
	StopReason *string `gorm:"type:varchar(300)"`

	CreatedBy uint `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
