package model

import (
	"gorm.io/datatypes"
)

type Product struct {
	ProductID      string                       `gorm:"type:varchar(20);primaryKey"`
	Name           string                       `gorm:"type:varchar(100);not null"`
	Category       string                       `gorm:"type:varchar(50);not null;index"`
	ProteinSources *string                      `gorm:"type:varchar(100)"`
	Ingredient     *string                      `gorm:"type:text"`
	Ingredient2    *string                      `gorm:"type:text"`
	Ingredient3    *string                      `gorm:"type:text"`
	Allergens      datatypes.JSONSlice[string]  `gorm:"type:jsonb"`
	Texture        *string                      `gorm:"type:varchar(20)"`
	PieceSizeCm    *int
	MoistureType   *string                      `gorm:"type:varchar(20)"`
	FunctionalTags datatypes.JSONSlice[string]  `gorm:"type:jsonb"`
	Packaging      *string                      `gorm:"type:varchar(50)"`
	Feature        *string                      `gorm:"type:text"`
	ShelfStable    bool                         `gorm:"not null"`
	StrongAroma    *bool
	CrumbLevel     *string                      `gorm:"type:varchar(10)"`
	NoiseLevel     *string                      `gorm:"type:varchar(10)"`
	Price          int                          `gorm:"not null"`
	AgeFit         *string                      `gorm:"type:varchar(20);index"`
	JawHardnessFit *string                      `gorm:"type:varchar(10);index"`
	ProteinPercent  *string                     `gorm:"type:varchar(10)"`
	MoisturePercent *string                     `gorm:"type:varchar(10)"`
	FiberPercent   *string                      `gorm:"type:varchar(10)"`
	AshPercent     *string                      `gorm:"type:varchar(10)"`
	FatPercent     *string                      `gorm:"type:varchar(10)"`
}

func (Product) TableName() string {
	return "products"
}
