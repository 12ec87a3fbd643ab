// Package domain holds the catalog entities shared by the client, the form,
// the terminal UI and the stub server.
package domain

import (
	"strings"

	"github.com/themilho/product-catalog/pkg/validator"
)

func init() {
	validator.MustRegisterStringRule("category", "must be one of the catalog categories", IsValidCategory)
	validator.MustRegisterStringRule("notblank", "is required", func(s string) bool {
		return strings.TrimSpace(s) != ""
	})
}

// Product is a catalog item as served by the catalog API.
type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Favorite    bool    `json:"favorite"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// DescriptionOrEmpty returns the description, or "" when absent.
func (p Product) DescriptionOrEmpty() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// ImageURLOrEmpty returns the image URL, or "" when absent.
func (p Product) ImageURLOrEmpty() string {
	if p.ImageURL == nil {
		return ""
	}
	return *p.ImageURL
}

// Input returns the writable fields of p.
func (p Product) Input() ProductInput {
	return ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Favorite:    p.Favorite,
		ImageURL:    p.ImageURL,
	}
}

// ProductInput is a product without its server-assigned id. It is the body of
// a create request.
type ProductInput struct {
	Name        string  `json:"name" validate:"notblank"`
	Description *string `json:"description,omitempty"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"required,category"`
	Favorite    bool    `json:"favorite"`
	ImageURL    *string `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Validate checks the input against the catalog rules.
func (in ProductInput) Validate() error {
	return validator.Validate(in)
}

// Product builds the stored product for id.
func (in ProductInput) Product(id int) Product {
	return Product{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Favorite:    in.Favorite,
		ImageURL:    in.ImageURL,
	}
}

// ProductPatch is a partial update. Nil fields are left unchanged.
type ProductPatch struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,notblank"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,category"`
	Favorite    *bool    `json:"favorite,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty" validate:"omitempty,url"`
}

// Validate checks the fields that are set.
func (p ProductPatch) Validate() error {
	return validator.Validate(p)
}

// Patch returns the patch that replaces every writable field with in. An
// absent description or image URL is sent as "" so the stored value is
// cleared.
func (in ProductInput) Patch() ProductPatch {
	name, price, category, favorite := in.Name, in.Price, in.Category, in.Favorite
	description, imageURL := "", ""
	if in.Description != nil {
		description = *in.Description
	}
	if in.ImageURL != nil {
		imageURL = *in.ImageURL
	}
	return ProductPatch{
		Name:        &name,
		Description: &description,
		Price:       &price,
		Category:    &category,
		Favorite:    &favorite,
		ImageURL:    &imageURL,
	}
}

// FavoritePatch sets only the favorite flag.
func FavoritePatch(favorite bool) ProductPatch {
	return ProductPatch{Favorite: &favorite}
}

// Apply returns p with the set fields of patch applied. A blank description
// or image URL clears it.
func (p Product) Apply(patch ProductPatch) Product {
	if patch.Name != nil {
		p.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		p.Description = StringPtr(*patch.Description)
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Favorite != nil {
		p.Favorite = *patch.Favorite
	}
	if patch.ImageURL != nil {
		p.ImageURL = StringPtr(*patch.ImageURL)
	}
	return p
}

// ViewMode selects how a product collection is presented.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// ParseViewMode accepts "grid" or "list".
func ParseViewMode(s string) (ViewMode, bool) {
	switch ViewMode(strings.ToLower(strings.TrimSpace(s))) {
	case ViewGrid:
		return ViewGrid, true
	case ViewList:
		return ViewList, true
	default:
		return "", false
	}
}

// Toggle returns the other view mode.
func (m ViewMode) Toggle() ViewMode {
	if m == ViewList {
		return ViewGrid
	}
	return ViewList
}

// StringPtr returns a pointer to s, or nil when s is blank.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
