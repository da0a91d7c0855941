package database

import (
	"database/sql"
	"fmt"
	"licaca-meal-log/models"
	"licaca-meal-log/structs"
	"licaca-meal-log/utils"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	_ "modernc.org/sqlite"
)

// DB is the process-wide pool opened by InitDatabasePool.
var DB *gorm.DB

func InitDatabasePool() error {
	db, err := Open(utils.EnvConfig.Database)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// Open connects to the configured database. "mysql" goes through the gorm
// mysql dialect; "sqlite" opens a pure Go sqlite handle and hands it to gorm's
// sqlite3 dialect.
func Open(config structs.Database) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch config.Client {
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", config.User, config.Password, config.Host, config.Port, config.Db, config.Params)
		if db, err = gorm.Open("mysql", dsn); err != nil {
			return nil, fmt.Errorf("failed to open mysql: %w", err)
		}
	case "sqlite", "sqlite3", "":
		path := config.Path
		if path == "" {
			path = ":memory:"
		}
		sqlDB, err := sql.Open("sqlite", path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
		// sqlite serializes writers; a single connection also keeps :memory: alive
		sqlDB.SetMaxOpenConns(1)
		if db, err = gorm.Open("sqlite3", sqlDB); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to open sqlite: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported database client %q", config.Client)
	}

	if config.MaxIdle > 0 {
		db.DB().SetMaxIdleConns(int(config.MaxIdle))
	}
	if config.MaxOpenConn > 0 && config.Client == "mysql" {
		db.DB().SetMaxOpenConns(int(config.MaxOpenConn))
	}
	if config.MaxLifeTime != "" {
		lifeTime, err := time.ParseDuration(config.MaxLifeTime)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("invalid database.max_life_time %q: %w", config.MaxLifeTime, err)
		}
		// recycling the only :memory: connection would drop the database
		if !inMemory(config) {
			db.DB().SetConnMaxLifetime(lifeTime)
		}
	}
	db.LogMode(config.LogEnable == 1)

	return db, nil
}

func inMemory(config structs.Database) bool {
	if config.Client == "mysql" {
		return false
	}
	return config.Path == "" || strings.HasPrefix(config.Path, ":memory:") || strings.Contains(config.Path, "mode=memory")
}

// Migrate creates or updates the tables this service owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Meal{}, &models.FoodFeeling{}, &models.ActivityLog{}).Error; err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	// sqlite cannot ALTER TABLE ADD CONSTRAINT
	dialect := db.Dialect()
	if dialect.GetName() != "sqlite3" {
		keyName := dialect.BuildKeyName("food_feelings", "meal_id", "meals(id)", "foreign")
		if dialect.HasForeignKey("food_feelings", keyName) {
			return nil
		}
		err := db.Model(&models.FoodFeeling{}).
			AddForeignKey("meal_id", "meals(id)", "CASCADE", "CASCADE").Error
		if err != nil {
			return fmt.Errorf("failed to add food_feelings foreign key: %w", err)
		}
	}
	return nil
}

func Close() {
	if DB != nil {
		DB.Close()
	}
}
