package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgressPhotoStatus tracks the two-step direct-to-S3 upload flow.
type ProgressPhotoStatus string

const (
	PhotoStatusPending   ProgressPhotoStatus = "pending"   // Upload URL issued, object not confirmed yet
	PhotoStatusConfirmed ProgressPhotoStatus = "confirmed" // Client reported a successful PUT
)

// ProgressPhoto is the metadata record for a user's progress picture.
// The actual image lives in object storage under ObjectKey.
type ProgressPhoto struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID  `bson:"userId" json:"userId"`
	ObjectKey   string              `bson:"objectKey" json:"objectKey"`
	FileName    string              `bson:"fileName,omitempty" json:"fileName,omitempty"`
	ContentType string              `bson:"contentType" json:"contentType"`
	FileSize    int64               `bson:"fileSize,omitempty" json:"fileSize,omitempty"`
	Status      ProgressPhotoStatus `bson:"status" json:"status"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
