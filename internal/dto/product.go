package dto

import (
	"strings"

	"teslo/internal/models"
)

// CreateProductDTO is the product creation request body.
type CreateProductDTO struct {
	Title       string   `json:"title" validate:"required,min=1"`
	Price       *float64 `json:"price" validate:"omitnil,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug"`
	Stock       *int     `json:"stock" validate:"omitnil,gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,required"`
	Gender      string   `json:"gender" validate:"required,oneof=men women kid unisex"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// Validate checks the creation fields.
func (d *CreateProductDTO) Validate() error {
	d.Title = strings.TrimSpace(d.Title)
	return validateStruct(d)
}

// ToModel builds the product row, its images and the owner reference.
func (d *CreateProductDTO) ToModel(owner *models.User) *models.Product {
	p := &models.Product{
		Title:       d.Title,
		Description: d.Description,
		Sizes:       models.StringList(d.Sizes),
		Gender:      models.Gender(d.Gender),
		Tags:        models.StringList(d.Tags),
	}
	if p.Tags == nil {
		p.Tags = models.StringList{}
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.Stock != nil {
		p.Stock = *d.Stock
	}
	if d.Slug != nil {
		p.Slug = *d.Slug
	}
	for _, url := range d.Images {
		p.Images = append(p.Images, models.ProductImage{URL: url})
	}
	if owner != nil {
		p.UserID = &owner.ID
		p.User = owner
	}
	return p
}

// UpdateProductDTO is the partial update body. Nil fields keep the stored
// value; a non-nil Images replaces the whole image set.
type UpdateProductDTO struct {
	Title       *string   `json:"title" validate:"omitnil,min=1"`
	Price       *float64  `json:"price" validate:"omitnil,gte=0"`
	Description *string   `json:"description"`
	Slug        *string   `json:"slug" validate:"omitnil,min=1"`
	Stock       *int      `json:"stock" validate:"omitnil,gte=0"`
	Sizes       *[]string `json:"sizes" validate:"omitnil,dive,required"`
	Gender      *string   `json:"gender" validate:"omitnil,oneof=men women kid unisex"`
	Tags        *[]string `json:"tags" validate:"omitnil,dive,required"`
	Images      *[]string `json:"images" validate:"omitnil,dive,required"`
}

// Validate checks the fields that are present.
func (d *UpdateProductDTO) Validate() error {
	if d.Title != nil {
		t := strings.TrimSpace(*d.Title)
		d.Title = &t
	}
	return validateStruct(d)
}

// ApplyTo merges the present fields into p. It reports whether the image
// set has to be replaced; when it does, p.Images holds the new set.
func (d *UpdateProductDTO) ApplyTo(p *models.Product) bool {
	if d.Title != nil {
		p.Title = *d.Title
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	if d.Description != nil {
		p.Description = d.Description
	}
	if d.Slug != nil {
		p.Slug = *d.Slug
	}
	if d.Stock != nil {
		p.Stock = *d.Stock
	}
	if d.Sizes != nil {
		p.Sizes = models.StringList(*d.Sizes)
	}
	if d.Gender != nil {
		p.Gender = models.Gender(*d.Gender)
	}
	if d.Tags != nil {
		p.Tags = models.StringList(*d.Tags)
	}
	if d.Images == nil {
		return false
	}

	p.Images = make([]models.ProductImage, 0, len(*d.Images))
	for _, url := range *d.Images {
		p.Images = append(p.Images, models.ProductImage{URL: url, ProductID: p.ID})
	}
	return true
}

// UserSummary is the owner projection embedded in product responses.
type UserSummary struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// ProductResponse is a product with its images flattened to URLs.
type ProductResponse struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Price       float64      `json:"price"`
	Description *string      `json:"description"`
	Slug        string       `json:"slug"`
	Stock       int          `json:"stock"`
	Sizes       []string     `json:"sizes"`
	Gender      string       `json:"gender"`
	Tags        []string     `json:"tags"`
	Images      []string     `json:"images"`
	User        *UserSummary `json:"user,omitempty"`
}

// NewProductResponse flattens p into its response view.
func NewProductResponse(p *models.Product) *ProductResponse {
	resp := &ProductResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Slug:        p.Slug,
		Stock:       p.Stock,
		Sizes:       nonNil(p.Sizes),
		Gender:      string(p.Gender),
		Tags:        nonNil(p.Tags),
		Images:      p.ImageURLs(),
	}
	if p.User != nil {
		resp.User = &UserSummary{ID: p.User.ID, Email: p.User.Email, FullName: p.User.FullName}
	}
	return resp
}

func nonNil(l models.StringList) []string {
	if l == nil {
		return []string{}
	}
	return []string(l)
}
