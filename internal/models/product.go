package models

import (
	"strings"
	"time"
)

// Gender is the audience a product is made for.
type Gender string

const (
	GenderMen    Gender = "men"
	GenderWomen  Gender = "women"
	GenderKid    Gender = "kid"
	GenderUnisex Gender = "unisex"
)

// Product represents a product in the store.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title       string         `json:"title" gorm:"type:text;not null;uniqueIndex"`
	Price       float64        `json:"price" gorm:"not null;default:0"`
	Description *string        `json:"description" gorm:"type:text"`
	Slug        string         `json:"slug" gorm:"type:text;not null;uniqueIndex"`
	Stock       int            `json:"stock" gorm:"not null;default:0"`
	Sizes       StringList     `json:"sizes" gorm:"not null"`
	Gender      Gender         `json:"gender" gorm:"type:text;not null"`
	Tags        StringList     `json:"tags" gorm:"not null;default:'{}'"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductID"`
	UserID      *string        `json:"-" gorm:"type:varchar(36);index"`
	User        *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
}

// ProductImage is an image owned by a product.
type ProductImage struct {
	ID        uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	URL       string `json:"url" gorm:"type:text;not null"`
	ProductID string `json:"-" gorm:"type:varchar(36);not null;index"`
}

// NormalizeSlug derives the slug from the title when it is empty and
// formats it. Every write path calls it before the row is persisted.
func (p *Product) NormalizeSlug() {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = FormatSlug(p.Slug)
}

// ImageURLs returns the image URLs in order.
func (p *Product) ImageURLs() []string {
	urls := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		urls = append(urls, img.URL)
	}
	return urls
}

var slugReplacer = strings.NewReplacer(" ", "_", "'", "", "â€™", "")

// FormatSlug lower-cases s, turns spaces into underscores and strips
// apostrophes, including the mis-encoded "â€™" sequence.
func FormatSlug(s string) string {
	return slugReplacer.Replace(strings.ToLower(s))
}
