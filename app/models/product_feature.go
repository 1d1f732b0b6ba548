package models

import "time"

// FeatureStatusPlaceholder marks a row written without a computed vector.
const FeatureStatusPlaceholder = "placeholder"

// ProductFeature keeps the image feature vector out of the products table so
// that catalog queries never load it.
type ProductFeature struct {
	ProductID   string `gorm:"size:36;primaryKey"`
	ImageURL    string `gorm:"size:500"`
	Vector      []byte
	Status      string `gorm:"size:20;not null;index"`
	ExtractedAt time.Time
}
