package seeders

import (
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"supplies-service/internal/models"
)

// Seed populates demo departments, accounts and catalog items. Safe to run
// repeatedly: rows upsert on their natural keys.
func Seed(db *gorm.DB) error {
	if err := seedDepartments(db); err != nil {
		return err
	}
	if err := seedUsers(db); err != nil {
		return err
	}
	if err := seedItems(db); err != nil {
		return err
	}
	logrus.Info("Demo data seeded")
	return nil
}

func seedDepartments(db *gorm.DB) error {
	departments := []models.Department{
		{Name: "Sales", Description: "Sales and customer accounts"},
		{Name: "Engineering", Description: "Product development"},
		{Name: "Operations", Description: "Facilities and logistics"},
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&departments).Error
}

func seedUsers(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{
			Name:         "System Admin",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			Department:   "Operations",
			Status:       models.UserStatusActive,
		},
		{
			Name:         "Morgan Reyes",
			Email:        "morgan.reyes@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleManager,
			Department:   "Sales",
			Status:       models.UserStatusActive,
		},
		{
			Name:         "Alex Kim",
			Email:        "alex.kim@example.com",
			PasswordHash: string(hash),
			Role:         models.RoleEmployee,
			Department:   "Sales",
			Status:       models.UserStatusActive,
		},
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&users).Error
}

func seedItems(db *gorm.DB) error {
	items := []models.Item{
		{
			Name:         "A4 Printer Paper (500 sheets)",
			Reference:    "PAP-A4-500",
			Category:     "Paper",
			Unit:         "ream",
			UnitPrice:    decimal.NewFromFloat(5.50),
			CurrentStock: 120,
			MinStock:     40,
		},
		{
			Name:         "Ballpoint Pen, Blue",
			Reference:    "PEN-BP-BLU",
			Category:     "Writing",
			Unit:         "box",
			UnitPrice:    decimal.NewFromFloat(10.00),
			CurrentStock: 35,
			MinStock:     20,
		},
		{
			Name:         "Stapler, Desktop",
			Reference:    "STA-DSK-01",
			Category:     "Desk",
			Unit:         "unit",
			UnitPrice:    decimal.NewFromFloat(12.75),
			CurrentStock: 8,
			MinStock:     10,
		},
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "reference"}},
		DoNothing: true,
	}).Create(&items).Error
}
