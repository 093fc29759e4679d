package notification

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID    *primitive.ObjectID `bson:"user_id,omitempty" json:"userId,omitempty"` // nil = broadcast to office
	Message   string              `bson:"message" json:"message"`
	Link      string              `bson:"link,omitempty" json:"link,omitempty"`
	IsRead    bool                `bson:"is_read" json:"read"`
	CreatedAt time.Time           `bson:"created_at" json:"date"`
	ReadAt    *time.Time          `bson:"read_at,omitempty" json:"read_at,omitempty"`
}
