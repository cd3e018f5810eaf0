package database

import (
	"fmt"
	"log"

	"hero_academy_backend/internal/config"
	"hero_academy_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB abre la conexión MySQL. La migración se ejecuta siempre en
// desarrollo; en release solo cuando runMigration lo pide (-migrate).
func InitDB(cfg *config.DatabaseConfig, runMigration bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if runMigration {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		log.Println("Database migration completed")

		if err := Seed(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Student{},
		&model.Training{},
	)
}

// Seed inserta las cuentas de demostración cuando la tabla está vacía.
func Seed(db *gorm.DB) error {
	var count int64
	db.Model(&model.Student{}).Count(&count)
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	seedStudents := []model.Student{
		{
			Name:     "Toshinori Yagi",
			HeroName: "All Might",
			Email:    "allmight@ua.edu",
			Password: string(hash),
			Quirk: model.Quirk{
				Name:        "One For All",
				Description: "Quirk acumulativo que combina la fuerza de nueve portadores.",
				Type:        model.QuirkEmission,
			},
			Class: "3-A",
			Role:  model.RoleInstructor,
			Level: 100,
			Score: 15000,
			Stats: model.Stats{Strength: 10, Speed: 10, Technique: 9, Intelligence: 9, Cooperation: 10},
		},
		{
			Name:     "Izuku Midoriya",
			HeroName: "Deku",
			Email:    "midoriya@ua.edu",
			Password: string(hash),
			Quirk: model.Quirk{
				Name:        "One For All",
				Description: "Quirk heredado que canaliza energía pura en fuerza y velocidad extremas.",
				Type:        model.QuirkEmission,
			},
			Class: "1-A",
			Role:  model.RoleStudent,
			Level: 35,
			Score: 1250,
			Stats: model.Stats{Strength: 9, Speed: 8, Technique: 7, Intelligence: 10, Cooperation: 10},
		},
		{
			Name:     "Katsuki Bakugo",
			HeroName: "Dynamight",
			Email:    "bakugo@ua.edu",
			Password: string(hash),
			Quirk: model.Quirk{
				Name:        "Explosion",
				Description: "Genera explosiones con el sudor nitroceluloso de sus palmas.",
				Type:        model.QuirkEmission,
			},
			Class: "1-A",
			Role:  model.RoleStudent,
			Level: 32,
			Score: 1100,
			Stats: model.Stats{Strength: 9, Speed: 8, Technique: 9, Intelligence: 8, Cooperation: 5},
		},
	}

	for i := range seedStudents {
		if err := db.Create(&seedStudents[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("Seeded %d students", len(seedStudents))
	return nil
}
