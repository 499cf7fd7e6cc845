package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MinProductPrice is the lowest listable price, in whole currency units.
const MinProductPrice = 50

// MaxProductPhotos caps the number of images stored per product.
const MaxProductPhotos = 5

// Review is a single customer review embedded in a product document.
// Application logic enforces one review per user; the schema does not.
type Review struct {
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	Name    string             `bson:"name" json:"name"`
	Rating  int                `bson:"rating" json:"rating"`
	Comment string             `bson:"comment,omitempty" json:"comment,omitempty"`
}

// Product is a catalogue entry with embedded reviews and inventory counters.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Price         int                `bson:"price" json:"price"`
	Description   string             `bson:"description" json:"description"`
	Photos        []Photo            `bson:"photos" json:"photos"`
	Brand         string             `bson:"brand" json:"brand"`
	Stock         int                `bson:"stock" json:"stock"`
	SoldUnits     int                `bson:"soldUnits" json:"soldUnits"`
	CategoryID    primitive.ObjectID `bson:"category" json:"category"`
	Ratings       float64            `bson:"ratings" json:"ratings"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	AddedBy       AuditRecord        `bson:"addedBy" json:"addedBy"`
	LastUpdatedBy *AuditRecord       `bson:"lastUpdatedBy,omitempty" json:"lastUpdatedBy,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecalculateRating recomputes the aggregate rating from the embedded
// reviews, rounded to one decimal place.
func (p *Product) RecalculateRating() {
	if len(p.Reviews) == 0 {
		p.Ratings = 0
		return
	}
	var sum int
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(p.Reviews))
	p.Ratings = float64(int(avg*10+0.5)) / 10
}

// ReviewRequest is the payload for PUT /product/:id/review.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=500"`
}
