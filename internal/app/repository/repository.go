package repository

import (
	"fmt"

	"tms/internal/app/ds"
	"tms/internal/app/service"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func New(dsn string) (*Repository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Автоматическая миграция всех таблиц
	err = db.AutoMigrate(
		&ds.User{},
		&ds.TenderInfo{},
		&ds.TenderInfoSheet{},
		&ds.TenderIncompleteField{},
		&ds.TenderStatusHistory{},
		&ds.PaymentRequest{},
		&ds.PaymentInstrument{},
		&ds.DdDetail{},
		&ds.FdrDetail{},
		&ds.BgDetail{},
		&ds.ChequeDetail{},
		&ds.TransferDetail{},
		&ds.InstrumentStatusHistory{},
		&ds.TimerTracker{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{
		db: db,
	}, nil
}

// InTx выполняет fn в транзакции базы. Вложенный Repository привязан
// к транзакции, все его записи фиксируются или откатываются вместе
func (r *Repository) InTx(fn func(tx service.Store) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}
