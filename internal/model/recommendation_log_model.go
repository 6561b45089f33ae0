package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RecommendationLog struct {
	LogID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`

	// Full state snapshots for offline analysis.
	ProfileSnapshot datatypes.JSON `gorm:"type:jsonb;not null"`
	ContextSnapshot datatypes.JSON `gorm:"type:jsonb;not null"`
	FiltersSnapshot datatypes.JSON `gorm:"type:jsonb;not null"`

	RecommendedProducts datatypes.JSON `gorm:"type:jsonb;not null"`

	ContextID      *string `gorm:"type:varchar(20);index"`
	AgeFit         *string `gorm:"type:varchar(20);index"`
	JawHardnessFit *string `gorm:"type:varchar(10);index"`

	TopProductID    string `gorm:"type:varchar(20);not null"`
	TopProductScore int    `gorm:"not null"`
}

func (RecommendationLog) TableName() string {
	return "recommendation_logs"
}
