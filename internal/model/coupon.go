package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Coupon is a percentage discount code. A coupon is single-use: applying it
// at checkout deactivates it.
type Coupon struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code      string             `bson:"code" json:"code"`
	Discount  int                `bson:"discount" json:"discount"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CouponRequest is the payload for POST /coupon.
type CouponRequest struct {
	Code     string `json:"code" binding:"required"`
	Discount int    `json:"discount" binding:"required,min=1,max=100"`
}
