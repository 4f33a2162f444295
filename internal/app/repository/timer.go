package repository

import (
	"time"

	"tms/internal/app/ds"
	"tms/internal/app/service"

	"gorm.io/gorm/clause"
)

// Таймеры этапов. Repository реализует service.TimerClient:
// строка таймера перезапускается при повторном старте того же этапа

func (r *Repository) StartTimer(entityType string, entityID uint, stage string, userID uint, cfg service.TimerConfig) error {
	now := time.Now()

	timerType := cfg.Type
	if timerType == "" {
		timerType = "FIXED_DURATION"
	}
	deadline := now.Add(time.Duration(cfg.AllocatedMs) * time.Millisecond)
	if cfg.DeadlineAt != nil {
		deadline = *cfg.DeadlineAt
	}

	row := ds.TimerTracker{
		EntityType:      entityType,
		EntityID:        entityID,
		Stage:           stage,
		Status:          "running",
		TimerType:       timerType,
		AllocatedTimeMs: cfg.AllocatedMs,
		StartedAt:       now,
		DeadlineAt:      deadline,
		CreatedBy:       userID,
	}

	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}, {Name: "stage"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"status":            "running",
			"timer_type":        timerType,
			"allocated_time_ms": cfg.AllocatedMs,
			"started_at":        now,
			"deadline_at":       deadline,
			"stopped_at":        nil,
			"stop_reason":       nil,
			"updated_at":        now,
		}),
	}).Create(&row).Error
}

func (r *Repository) StopTimer(entityType string, entityID uint, stage string, userID uint, reason string) error {
	now := time.Now()
	fields := map[string]interface{}{
		"status":     "stopped",
		"stopped_at": now,
		"updated_at": now,
	}
	if reason != "" {
		fields["stop_reason"] = reason
	}
	return r.db.Model(&ds.TimerTracker{}).
		Where("entity_type = ? AND entity_id = ? AND stage = ? AND status = ?",
			entityType, entityID, stage, "running").
		Updates(fields).Error
}
