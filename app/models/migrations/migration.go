package migrations

import (
	"github.com/QuangMinh02052004/DACN-Bloomie/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Style{},
		&models.Category{},
		&models.Product{},
		&models.Promotion{},
		&models.Rating{},
		&models.ProductFeature{},
	)
}
