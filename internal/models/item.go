package models

import "gorm.io/datatypes"

type Item struct {
	BaseModel
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Category    string `gorm:"index" json:"category"`
	Size        string `json:"size"`
	Condition   string `json:"condition"`

	Price      int64 `gorm:"not null" json:"price"`
	CoinReward int64 `gorm:"default:0" json:"coin_reward"`

	Status    ItemStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	IsFlagged bool       `gorm:"default:false" json:"is_flagged"`

	// The flat listing reward is paid on the first approval only; edits
	// that send the item back through review do not earn it again.
	RewardGranted bool `gorm:"default:false" json:"-"`

	OwnerID string         `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner   *User          `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Views   int64          `gorm:"default:0" json:"views"`
	Images  datatypes.JSON `gorm:"type:jsonb" json:"images"`
}
