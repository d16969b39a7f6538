package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/mesa-scheduler/internal/errs"
	"github.com/BruksfildServices01/mesa-scheduler/internal/models"
)

// Logger grava os eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Write(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		RestaurantID:  ev.RestaurantID,
		Actor:         ev.Actor,
		Action:        ev.Action,
		Entity:        ev.Entity,
		EntityID:      ev.EntityID,
		CorrelationID: ev.CorrelationID,
		Metadata:      metaJSON,
		CreatedAt:     ev.OccurredAt,
	}

	return errs.Wrap(l.db.WithContext(ctx).Create(&log).Error, "insert audit log")
}

var _ Sink = (*Logger)(nil)
