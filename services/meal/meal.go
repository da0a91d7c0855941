package meal

import (
	"encoding/json"
	"errors"
	"fmt"
	"licaca-meal-log/models"
	"licaca-meal-log/services/metrics"
	"licaca-meal-log/structs"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
)

// ErrStorage wraps every failure that comes from the database.
var ErrStorage = errors.New("meal storage error")

const bulkChunkSize = 500

var itemIndex = regexp.MustCompile(`\[\d+\]`)

// Publisher delivers meal created events. A nil Publisher disables events.
type Publisher interface {
	Publish(queue string, body []byte) error
}

type MealService struct {
	db        *gorm.DB
	publisher Publisher
	queue     string
	logger    *logrus.Entry
	now       func() time.Time
}

func NewMealService(db *gorm.DB, publisher Publisher, queue string, logger *logrus.Entry) *MealService {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &MealService{
		db:        db,
		publisher: publisher,
		queue:     queue,
		logger:    logger.WithField("task", "meal"),
		now:       time.Now,
	}
}

// Create validates param and stores the meal and its food feelings in one
// transaction. The returned meal is read back from the store.
func (m *MealService) Create(param structs.MealParam) (*models.Meal, error) {
	if err := Validate(param); err != nil {
		var validationErr *ValidationError
		if errors.As(err, &validationErr) {
			metrics.ValidationFailures.WithLabelValues(itemIndex.ReplaceAllString(validationErr.Field, "")).Inc()
		}
		return nil, err
	}

	mealEntity, err := m.buildMeal(param)
	if err != nil {
		return nil, err
	}
	items := mealEntity.Items
	mealEntity.Items = nil

	tx := m.db.Begin()
	if err := tx.Error; err != nil {
		return nil, m.storageError("create", "begin transaction", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Set("gorm:save_associations", false).Create(&mealEntity).Error; err != nil {
		tx.Rollback()
		return nil, m.storageError("create", "insert meal", err)
	}

	insertRecords := make([]interface{}, 0, len(items))
	for i := range items {
		insertRecords = append(insertRecords, &items[i])
	}
	if err := gormbulk.BulkInsert(tx, insertRecords, bulkChunkSize); err != nil {
		tx.Rollback()
		return nil, m.storageError("create", "insert food feelings", err)
	}

	var persisted models.Meal
	if err := preloadItems(tx).Where("id = ?", mealEntity.ID).First(&persisted).Error; err != nil {
		tx.Rollback()
		return nil, m.storageError("create", "reload meal", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, m.storageError("create", "commit", err)
	}

	metrics.MealsCreated.Inc()
	m.logger.WithFields(logrus.Fields{"meal_id": persisted.ID, "items": len(persisted.Items)}).Info("meal created")
	m.notify(persisted)

	return &persisted, nil
}

// List returns every meal with its food feelings, newest first.
func (m *MealService) List() ([]models.Meal, error) {
	meals := []models.Meal{}
	if err := preloadItems(m.db).Order("created_at desc").Order("id desc").Find(&meals).Error; err != nil {
		return nil, m.storageError("list", "query meals", err)
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	return meals, nil
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

func (m *MealService) buildMeal(param structs.MealParam) (models.Meal, error) {
	mealID, err := uuid.NewV7()
	if err != nil {
		return models.Meal{}, fmt.Errorf("generate meal id: %w", err)
	}

	symptomTime := param.SymptomTime
	if symptomTime == nil {
		symptomTime = param.LegacySymptomTime
	}
	symptomEnd := param.SymptomEnd
	if symptomEnd == nil {
		symptomEnd = param.LegacySymptomEnd
	}

	mealEntity := models.Meal{
		ID:          mealID.String(),
		Foods:       param.Foods,
		MealType:    param.MealType,
		Time:        param.Time,
		Notes:       optional(param.Notes),
		SymptomTime: optional(symptomTime),
		SymptomEnd:  optional(symptomEnd),
		PainRating:  *param.PainRating,
		CreatedAt:   m.now().UTC(),
	}

	for i, item := range param.Items {
		itemID, err := uuid.NewV7()
		if err != nil {
			return models.Meal{}, fmt.Errorf("generate food feeling id: %w", err)
		}
		mealEntity.Items = append(mealEntity.Items, models.FoodFeeling{
			ID:       itemID.String(),
			MealID:   mealEntity.ID,
			Position: i,
			Food:     item.Food,
			Rating:   *item.Rating,
			Notes:    optional(item.Notes),
		})
	}
	return mealEntity, nil
}

func (m *MealService) notify(mealEntity models.Meal) {
	if m.publisher == nil || m.queue == "" {
		return
	}
	body, err := json.Marshal(structs.MealCreatedEvent{
		MealID:     mealEntity.ID,
		MealType:   mealEntity.MealType,
		Time:       mealEntity.Time,
		PainRating: mealEntity.PainRating,
		ItemCount:  len(mealEntity.Items),
		CreatedAt:  mealEntity.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		m.logger.WithField("meal_id", mealEntity.ID).Error("encode meal created event: ", err.Error())
		return
	}
	if err := m.publisher.Publish(m.queue, body); err != nil {
		metrics.EventPublishFailures.Inc()
		m.logger.WithFields(logrus.Fields{"meal_id": mealEntity.ID, "queue": m.queue}).Error("publish meal created event: ", err.Error())
	}
}

func (m *MealService) storageError(operation, step string, err error) error {
	metrics.StorageFailures.WithLabelValues(operation).Inc()
	m.logger.WithFields(logrus.Fields{"operation": operation, "step": step}).Error(err.Error())
	return fmt.Errorf("%w: %s: %v", ErrStorage, step, err)
}

// optional maps absent and empty strings to NULL. Whitespace is kept as sent.
func optional(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	v := *value
	return &v
}
