// Package form holds the state of the create and edit product forms.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/themilho/product-catalog/internal/catalog"
	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/pkg/validator"
)

// Mode selects between creating a product and editing an existing one.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// Editable fields, keyed by their JSON names.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldPrice       = "price"
	FieldCategory    = "category"
	FieldImageURL    = "imageUrl"
)

// Fields lists the text fields in display order.
var Fields = []string{FieldName, FieldDescription, FieldPrice, FieldCategory, FieldImageURL}

// Field error messages.
const (
	MsgNameRequired     = "Name is required"
	MsgCategoryRequired = "Category is required"
	MsgCategoryUnknown  = "Please select a valid category"
	MsgPricePositive    = "Price must be positive"
	MsgInvalidURL       = "Please enter a valid URL"
)

// Notification texts for the save flows.
const (
	MsgCreated      = "Produto criado com sucesso!"
	MsgCreateFailed = "Erro ao criar o produto"
	MsgUpdated      = "Produto atualizado com sucesso!"
	MsgUpdateFailed = "Erro ao atualizar o produto"

	// LoadErrorMessage is shown in place of the edit form when the product
	// cannot be fetched.
	LoadErrorMessage = "Erro ao carregar o produto. Tente novamente."
)

// ErrInvalid is returned by Submit when validation fails. The field errors
// are available from Errors.
var ErrInvalid = errors.New("product form has validation errors")

// ErrUnknownField is returned by Set for a name outside Fields.
var ErrUnknownField = errors.New("unknown form field")

// Form is the editable state of one product.
type Form struct {
	mode Mode
	id   int

	name        string
	description string
	price       float64
	category    string
	favorite    bool
	imageURL    string

	errors map[string]string
}

// NewCreate returns an empty create form.
func NewCreate() *Form {
	return &Form{mode: ModeCreate, errors: map[string]string{}}
}

// NewEdit returns an edit form filled from p.
func NewEdit(p domain.Product) *Form {
	return &Form{
		mode:        ModeEdit,
		id:          p.ID,
		name:        p.Name,
		description: p.DescriptionOrEmpty(),
		price:       p.Price,
		category:    p.Category,
		favorite:    p.Favorite,
		imageURL:    p.ImageURLOrEmpty(),
		errors:      map[string]string{},
	}
}

// Mode returns whether the form creates or edits.
func (f *Form) Mode() Mode { return f.mode }

// ID returns the id of the product being edited, 0 in create mode.
func (f *Form) ID() int { return f.id }

// Title returns the form heading.
func (f *Form) Title() string {
	if f.mode == ModeEdit {
		return "Editar Item"
	}
	return "Criar Novo Item"
}

// Value returns the text of field. Price is formatted with two decimals.
func (f *Form) Value(field string) string {
	switch field {
	case FieldName:
		return f.name
	case FieldDescription:
		return f.description
	case FieldPrice:
		return strconv.FormatFloat(f.price, 'f', 2, 64)
	case FieldCategory:
		return f.category
	case FieldImageURL:
		return f.imageURL
	default:
		return ""
	}
}

// Price returns the parsed price.
func (f *Form) Price() float64 { return f.price }

// Favorite returns the favorite flag.
func (f *Form) Favorite() bool { return f.favorite }

// Set updates a text field and clears its error. An empty or unparsable
// price becomes 0.
func (f *Form) Set(field, value string) error {
	switch field {
	case FieldName:
		f.name = value
	case FieldDescription:
		f.description = value
	case FieldPrice:
		f.price = parsePrice(value)
	case FieldCategory:
		f.category = value
	case FieldImageURL:
		f.imageURL = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	delete(f.errors, field)
	return nil
}

func parsePrice(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// SetFavorite sets the favorite flag.
func (f *Form) SetFavorite(favorite bool) {
	f.favorite = favorite
}

// ClearImage removes the image URL and its error.
func (f *Form) ClearImage() {
	f.imageURL = ""
	delete(f.errors, FieldImageURL)
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// Error returns the error for field, or "".
func (f *Form) Error(field string) string {
	return f.errors[field]
}

// Input converts the form into the request body. Blank description and image
// URL become absent.
func (f *Form) Input() domain.ProductInput {
	return domain.ProductInput{
		Name:        strings.TrimSpace(f.name),
		Description: domain.StringPtr(f.description),
		Price:       f.price,
		Category:    f.category,
		Favorite:    f.favorite,
		ImageURL:    domain.StringPtr(f.imageURL),
	}
}

// Validate replaces the field errors with the result of checking the current
// values and reports whether there are none.
func (f *Form) Validate() bool {
	f.errors = map[string]string{}

	err := f.Input().Validate()
	if err == nil {
		return true
	}

	var valErr *validator.ValidationError
	if !errors.As(err, &valErr) {
		f.errors[FieldName] = err.Error()
		return false
	}
	for field := range valErr.Fields() {
		f.errors[field] = f.message(field)
	}
	return len(f.errors) == 0
}

func (f *Form) message(field string) string {
	switch field {
	case FieldName:
		return MsgNameRequired
	case FieldCategory:
		if strings.TrimSpace(f.category) == "" {
			return MsgCategoryRequired
		}
		return MsgCategoryUnknown
	case FieldPrice:
		return MsgPricePositive
	case FieldImageURL:
		return MsgInvalidURL
	default:
		return "is invalid"
	}
}

// Submit validates the form and hands the input to fn. It returns ErrInvalid
// without calling fn when validation fails.
func (f *Form) Submit(ctx context.Context, fn func(context.Context, domain.ProductInput) error) error {
	if !f.Validate() {
		return ErrInvalid
	}
	return fn(ctx, f.Input())
}

// API is the part of the catalog API the form flows use.
type API interface {
	Get(ctx context.Context, id int) (domain.Product, error)
	Create(ctx context.Context, in domain.ProductInput) (domain.Product, error)
	Update(ctx context.Context, id int, patch domain.ProductPatch) (domain.Product, error)
}

// Load fetches product id and returns an edit form for it.
func Load(ctx context.Context, api API, id int) (*Form, error) {
	p, err := api.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load product %d: %w", id, err)
	}
	return NewEdit(p), nil
}

// Save submits the form through api: Create in create mode, Update with every
// field in edit mode. Success and failure are reported on notifier; a
// validation failure is not. On success the saved product and the route of
// its detail page are returned.
func (f *Form) Save(ctx context.Context, api API, notifier catalog.Notifier, logger *slog.Logger) (domain.Product, string, error) {
	var saved domain.Product
	err := f.Submit(ctx, func(ctx context.Context, in domain.ProductInput) error {
		var err error
		if f.mode == ModeEdit {
			saved, err = api.Update(ctx, f.id, in.Patch())
		} else {
			saved, err = api.Create(ctx, in)
		}
		return err
	})

	switch {
	case errors.Is(err, ErrInvalid):
		return domain.Product{}, "", err
	case err != nil:
		logger.ErrorContext(ctx, "save product failed",
			slog.String("mode", string(f.mode)),
			slog.Int("product_id", f.id),
			slog.String("error", err.Error()),
		)
		if f.mode == ModeEdit {
			notifier.Error(ctx, MsgUpdateFailed)
		} else {
			notifier.Error(ctx, MsgCreateFailed)
		}
		return domain.Product{}, "", err
	}

	if f.mode == ModeEdit {
		notifier.Success(ctx, MsgUpdated)
	} else {
		notifier.Success(ctx, MsgCreated)
	}
	return saved, catalog.DetailRoute(saved.ID), nil
}
