package activityLog

import (
	"encoding/json"
	"licaca-meal-log/models"
	"licaca-meal-log/structs"
	"time"

	"github.com/jinzhu/gorm"
)

// Insert records a lifecycle event in the activity_log table.
func Insert(db *gorm.DB, logName string, data structs.ActivityLogJsonModel) error {
	properties, err := json.Marshal(data)
	if err != nil {
		return err
	}

	insertTime := time.Now().UTC()
	var activityLogEntity models.ActivityLog
	activityLogEntity.CreatedAt = &insertTime
	activityLogEntity.UpdatedAt = &insertTime
	activityLogEntity.LogName = logName
	activityLogEntity.Description = "licaca-meal-log"
	activityLogEntity.Properties = string(properties)

	return db.Create(&activityLogEntity).Error
}
