package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow is a directed edge: follower follows following.
// (followerId, followingId) is unique; re-follows are no-ops.
type Follow struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FollowerID  primitive.ObjectID `bson:"followerId" json:"followerId"`
	FollowingID primitive.ObjectID `bson:"followingId" json:"followingId"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// SocialProfile is a user's public profile enriched with follow stats,
// relative to the caller (IsFollowing).
type SocialProfile struct {
	ID          primitive.ObjectID `json:"id"`
	Username    string             `json:"username"`
	Bio         string             `json:"bio,omitempty"`
	Instagram   string             `json:"instagram,omitempty"`
	Twitter     string             `json:"twitter,omitempty"`
	Followers   int64              `json:"followers"`
	Following   int64              `json:"following"`
	IsFollowing bool               `json:"isFollowing"`
}
