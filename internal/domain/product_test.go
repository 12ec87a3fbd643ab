package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themilho/product-catalog/pkg/validator"
)

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var valErr *validator.ValidationError
	require.ErrorAs(t, err, &valErr)
	return valErr.Fields()
}

func TestProduct_JSONNames(t *testing.T) {
	desc := "Prata 925"
	p := Product{ID: 1, Name: "Anel", Description: &desc, Price: 50, Category: "Jóias", Favorite: true}

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Anel","description":"Prata 925","price":50,"category":"Jóias","favorite":true}`, string(data))
}

func TestProduct_OptionalFieldsAccessors(t *testing.T) {
	var p Product
	assert.Equal(t, "", p.DescriptionOrEmpty())
	assert.Equal(t, "", p.ImageURLOrEmpty())

	url := "https://img.example.com/a.png"
	p.ImageURL = &url
	assert.Equal(t, url, p.ImageURLOrEmpty())
}

func TestProductInput_Validate(t *testing.T) {
	valid := ProductInput{Name: "Bolsa", Price: 120, Category: "Acessórios"}
	assert.NoError(t, valid.Validate())

	err := ProductInput{Name: "   ", Price: -1, Category: "Sapatos"}.Validate()
	f := fields(t, err)
	assert.Equal(t, "is required", f["name"])
	assert.Equal(t, "must be greater than or equal to 0", f["price"])
	assert.Equal(t, "must be one of the catalog categories", f["category"])
}

func TestProductInput_ValidateMissingCategory(t *testing.T) {
	f := fields(t, ProductInput{Name: "Bolsa"}.Validate())
	assert.Equal(t, "is required", f["category"])
}

func TestProductInput_ValidateImageURL(t *testing.T) {
	bad := "not a url"
	f := fields(t, ProductInput{Name: "Bolsa", Category: "Outros", ImageURL: &bad}.Validate())
	assert.Equal(t, "must be a valid URL", f["imageUrl"])

	good := "https://img.example.com/bolsa.jpg"
	assert.NoError(t, ProductInput{Name: "Bolsa", Category: "Outros", ImageURL: &good}.Validate())
}

func TestProductPatch_ValidateOnlySetFields(t *testing.T) {
	assert.NoError(t, FavoritePatch(true).Validate())

	blank := ""
	negative := -3.0
	f := fields(t, ProductPatch{Name: &blank, Price: &negative}.Validate())
	assert.Contains(t, f, "name")
	assert.Contains(t, f, "price")
}

func TestFavoritePatch_JSON(t *testing.T) {
	data, err := json.Marshal(FavoritePatch(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"favorite":false}`, string(data))
}

func TestProduct_Apply(t *testing.T) {
	p := Product{ID: 2, Name: "Bolsa", Price: 120, Category: "Acessórios"}

	name, price := "  Bolsa de couro ", 150.0
	got := p.Apply(ProductPatch{Name: &name, Price: &price, Favorite: boolPtr(true)})

	assert.Equal(t, 2, got.ID)
	assert.Equal(t, "Bolsa de couro", got.Name)
	assert.Equal(t, 150.0, got.Price)
	assert.Equal(t, "Acessórios", got.Category)
	assert.True(t, got.Favorite)
	assert.False(t, p.Favorite, "Apply must not mutate the receiver")
}

func TestProductInput_RoundTripThroughPatch(t *testing.T) {
	desc := "Couro"
	in := ProductInput{Name: "Bolsa", Description: &desc, Price: 120, Category: "Acessórios", Favorite: true}

	got := Product{ID: 9}.Apply(in.Patch())
	assert.Equal(t, in.Product(9), got)
	assert.Equal(t, in, got.Input())
}

func TestProductInput_PatchClearsOptionalFields(t *testing.T) {
	stored := Product{ID: 4, Name: "Vaso", Description: StringPtr("Azul"), ImageURL: StringPtr("https://example.com/v.jpg"), Category: "Outros"}
	in := ProductInput{Name: "Vaso", Category: "Outros"}

	patch := in.Patch()
	require.NotNil(t, patch.ImageURL)
	assert.Equal(t, "", *patch.ImageURL)
	assert.NoError(t, patch.Validate())

	got := stored.Apply(patch)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.ImageURL)
}

func TestCategories(t *testing.T) {
	assert.Len(t, Categories, 12)
	assert.True(t, IsValidCategory("Jóias"))
	assert.True(t, IsValidCategory("Casa & Jardim"))
	assert.False(t, IsValidCategory("jóias"))
	assert.False(t, IsValidCategory(""))
}

func TestViewMode(t *testing.T) {
	m, ok := ParseViewMode(" List ")
	assert.True(t, ok)
	assert.Equal(t, ViewList, m)

	_, ok = ParseViewMode("table")
	assert.False(t, ok)

	assert.Equal(t, ViewList, ViewGrid.Toggle())
	assert.Equal(t, ViewGrid, ViewList.Toggle())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr("   "))
	require.NotNil(t, StringPtr(" x "))
	assert.Equal(t, "x", *StringPtr(" x "))
}

func boolPtr(b bool) *bool { return &b }
