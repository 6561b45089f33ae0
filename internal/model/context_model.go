package model

type Context struct {
	ContextID      string  `gorm:"type:varchar(20);primaryKey"`
	Occasion       string  `gorm:"type:varchar(100);not null"`
	LocationType   *string `gorm:"type:varchar(50)"`
	DurationMin    *int
	MessyOk        *bool
	NoiseSensitive *bool
	Storage        *string `gorm:"type:varchar(50)"`
	BudgetMax      *int
	Season         *string `gorm:"type:varchar(20)"`
	OwnerPref      *string `gorm:"type:text"`
}

func (Context) TableName() string {
	return "contexts"
}
