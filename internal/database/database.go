package database

import (
	"context"

	"github.com/leeyanqing2004/loyalty-platform/internal/config"
	"github.com/leeyanqing2004/loyalty-platform/internal/model"
	"github.com/leeyanqing2004/loyalty-platform/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := mysql.NewConnection(context.Background(), cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Transaction{},
		&model.Promotion{},
		&model.Event{},
		&model.Raffle{},
		&model.RaffleEntry{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedSystemUser(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedSystemUser guarantees the internal actor that scheduled jobs run as.
func seedSystemUser(db *gorm.DB) error {
	system := model.User{
		UTORid:   model.SystemUTORid,
		Name:     "System",
		Email:    "system@internal",
		Role:     model.RoleSuperuser,
		Verified: true,
	}
	return db.Where(&model.User{UTORid: model.SystemUTORid}).
		Attrs(system).
		FirstOrCreate(&model.User{}).Error
}
