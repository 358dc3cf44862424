package queue

import (
	"time"

	"github.com/shashiranjanraj/drivehub/pkg/logger"
	"gorm.io/gorm"
)

// FailedJobRecord is one exhausted job, kept so an operator can inspect
// and re-dispatch it.
type FailedJobRecord struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	JobType  string    `gorm:"size:255;not null;index"`
	Payload  string    `gorm:"type:text;not null"`
	Error    string    `gorm:"type:text"`
	Attempts int       `gorm:"not null;default:0"`
	FailedAt time.Time `gorm:"autoCreateTime"`
}

func (FailedJobRecord) TableName() string { return "failed_jobs" }

var failedDB *gorm.DB

// UseDB enables failed-job persistence. Call once after database.Connect.
func UseDB(db *gorm.DB) {
	failedDB = db
	db.AutoMigrate(&FailedJobRecord{})
}

func recordFailure(jobType string, payload []byte, cause error) {
	if failedDB == nil {
		return
	}
	row := FailedJobRecord{
		JobType:  jobType,
		Payload:  string(payload),
		Error:    cause.Error(),
		Attempts: maxAttempts,
		FailedAt: time.Now(),
	}
	if err := failedDB.Create(&row).Error; err != nil {
		logger.Error("queue: persist failed job", "type", jobType, "error", err)
	}
}
