package form

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/themilho/product-catalog/internal/domain"
	"github.com/themilho/product-catalog/pkg/logger"
)

type mockAPI struct{ mock.Mock }

func (m *mockAPI) Get(ctx context.Context, id int) (domain.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

func (m *mockAPI) Create(ctx context.Context, in domain.ProductInput) (domain.Product, error) {
	args := m.Called(ctx, in)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

func (m *mockAPI) Update(ctx context.Context, id int, patch domain.ProductPatch) (domain.Product, error) {
	args := m.Called(ctx, id, patch)
	p, _ := args.Get(0).(domain.Product)
	return p, args.Error(1)
}

type recordingNotifier struct {
	successes []string
	errors    []string
}

func (r *recordingNotifier) Success(_ context.Context, msg string) { r.successes = append(r.successes, msg) }
func (r *recordingNotifier) Error(_ context.Context, msg string)   { r.errors = append(r.errors, msg) }

func validForm(t *testing.T) *Form {
	t.Helper()
	f := NewCreate()
	require.NoError(t, f.Set(FieldName, "Vaso"))
	require.NoError(t, f.Set(FieldCategory, "Casa & Jardim"))
	require.NoError(t, f.Set(FieldPrice, "35.5"))
	return f
}

func TestNewCreate_Empty(t *testing.T) {
	f := NewCreate()
	assert.Equal(t, ModeCreate, f.Mode())
	assert.Equal(t, "Criar Novo Item", f.Title())
	assert.Equal(t, "", f.Value(FieldName))
	assert.Equal(t, "0.00", f.Value(FieldPrice))
	assert.False(t, f.Favorite())
}

func TestNewEdit_FillsFromProduct(t *testing.T) {
	desc := "Couro"
	f := NewEdit(domain.Product{ID: 4, Name: "Bolsa", Description: &desc, Price: 120, Category: "Acessórios", Favorite: true})

	assert.Equal(t, ModeEdit, f.Mode())
	assert.Equal(t, 4, f.ID())
	assert.Equal(t, "Editar Item", f.Title())
	assert.Equal(t, "Couro", f.Value(FieldDescription))
	assert.Equal(t, "120.00", f.Value(FieldPrice))
	assert.Equal(t, "", f.Value(FieldImageURL))
	assert.True(t, f.Favorite())
}

func TestSet_PriceParsing(t *testing.T) {
	f := NewCreate()

	require.NoError(t, f.Set(FieldPrice, "12.75"))
	assert.Equal(t, 12.75, f.Price())

	require.NoError(t, f.Set(FieldPrice, ""))
	assert.Zero(t, f.Price())

	require.NoError(t, f.Set(FieldPrice, "abc"))
	assert.Zero(t, f.Price())

	for _, s := range []string{"Inf", "-inf", "+Infinity", "NaN", "1e400"} {
		require.NoError(t, f.Set(FieldPrice, s))
		assert.Zero(t, f.Price(), s)
	}
}

func TestValidate_NonFinitePriceIsNotSaved(t *testing.T) {
	f := NewCreate()
	require.NoError(t, f.Set(FieldName, "Caneca"))
	require.NoError(t, f.Set(FieldCategory, "Outros"))
	require.NoError(t, f.Set(FieldPrice, "Inf"))

	require.True(t, f.Validate())
	assert.Zero(t, f.Input().Price)
}

func TestSet_UnknownField(t *testing.T) {
	err := NewCreate().Set("sku", "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestValidate_EmptyForm(t *testing.T) {
	f := NewCreate()
	assert.False(t, f.Validate())

	assert.Equal(t, map[string]string{
		FieldName:     MsgNameRequired,
		FieldCategory: MsgCategoryRequired,
	}, f.Errors())
}

func TestValidate_AllRules(t *testing.T) {
	f := NewCreate()
	require.NoError(t, f.Set(FieldName, "   "))
	require.NoError(t, f.Set(FieldCategory, "Ferramentas"))
	require.NoError(t, f.Set(FieldPrice, "-1"))
	require.NoError(t, f.Set(FieldImageURL, "not a url"))

	assert.False(t, f.Validate())
	assert.Equal(t, MsgNameRequired, f.Error(FieldName))
	assert.Equal(t, MsgCategoryUnknown, f.Error(FieldCategory))
	assert.Equal(t, MsgPricePositive, f.Error(FieldPrice))
	assert.Equal(t, MsgInvalidURL, f.Error(FieldImageURL))
}

func TestValidate_Valid(t *testing.T) {
	f := validForm(t)
	require.NoError(t, f.Set(FieldImageURL, "https://example.com/vaso.png"))
	assert.True(t, f.Validate())
	assert.Empty(t, f.Errors())
}

func TestSet_ClearsFieldError(t *testing.T) {
	f := NewCreate()
	f.Validate()
	require.NotEmpty(t, f.Error(FieldName))

	require.NoError(t, f.Set(FieldName, "V"))
	assert.Empty(t, f.Error(FieldName))
	assert.NotEmpty(t, f.Error(FieldCategory))
}

func TestClearImage(t *testing.T) {
	f := validForm(t)
	require.NoError(t, f.Set(FieldImageURL, "bad"))
	f.Validate()
	require.NotEmpty(t, f.Error(FieldImageURL))

	f.ClearImage()
	assert.Empty(t, f.Value(FieldImageURL))
	assert.Empty(t, f.Error(FieldImageURL))
	assert.True(t, f.Validate())
}

func TestInput_BlankOptionalFieldsAbsent(t *testing.T) {
	f := validForm(t)
	require.NoError(t, f.Set(FieldName, "  Vaso  "))
	require.NoError(t, f.Set(FieldDescription, "  "))
	require.NoError(t, f.Set(FieldImageURL, ""))
	f.SetFavorite(true)

	in := f.Input()
	assert.Equal(t, "Vaso", in.Name)
	assert.Nil(t, in.Description)
	assert.Nil(t, in.ImageURL)
	assert.True(t, in.Favorite)
}

func TestSubmit_InvalidSkipsCallback(t *testing.T) {
	called := false
	err := NewCreate().Submit(context.Background(), func(context.Context, domain.ProductInput) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalid)
	assert.False(t, called)
}

func TestSubmit_PassesInput(t *testing.T) {
	var got domain.ProductInput
	err := validForm(t).Submit(context.Background(), func(_ context.Context, in domain.ProductInput) error {
		got = in
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Vaso", got.Name)
	assert.Equal(t, 35.5, got.Price)
}

func TestSave_CreateSuccess(t *testing.T) {
	api := new(mockAPI)
	n := &recordingNotifier{}
	api.On("Create", mock.Anything, mock.MatchedBy(func(in domain.ProductInput) bool {
		return in.Name == "Vaso" && in.Category == "Casa & Jardim"
	})).Return(domain.Product{ID: 11, Name: "Vaso"}, nil)

	p, route, err := validForm(t).Save(context.Background(), api, n, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, 11, p.ID)
	assert.Equal(t, "/products/11", route)
	assert.Equal(t, []string{MsgCreated}, n.successes)
	assert.Empty(t, n.errors)
}

func TestSave_CreateFailure(t *testing.T) {
	api := new(mockAPI)
	n := &recordingNotifier{}
	api.On("Create", mock.Anything, mock.Anything).Return(domain.Product{}, errors.New("500"))

	_, _, err := validForm(t).Save(context.Background(), api, n, logger.Discard())
	require.Error(t, err)
	assert.Equal(t, []string{MsgCreateFailed}, n.errors)
}

func TestSave_EditUpdatesEveryField(t *testing.T) {
	api := new(mockAPI)
	n := &recordingNotifier{}
	f := NewEdit(domain.Product{ID: 3, Name: "Anel", Category: "Jóias", Price: 50})
	require.NoError(t, f.Set(FieldPrice, "55"))

	api.On("Update", mock.Anything, 3, mock.MatchedBy(func(p domain.ProductPatch) bool {
		return p.Name != nil && *p.Name == "Anel" && p.Price != nil && *p.Price == 55 && p.Favorite != nil
	})).Return(domain.Product{ID: 3, Name: "Anel", Price: 55}, nil)

	_, route, err := f.Save(context.Background(), api, n, logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, "/products/3", route)
	assert.Equal(t, []string{MsgUpdated}, n.successes)
	api.AssertExpectations(t)
}

func TestSave_EditFailure(t *testing.T) {
	api := new(mockAPI)
	n := &recordingNotifier{}
	api.On("Update", mock.Anything, 3, mock.Anything).Return(domain.Product{}, errors.New("timeout"))

	f := NewEdit(domain.Product{ID: 3, Name: "Anel", Category: "Jóias"})
	_, _, err := f.Save(context.Background(), api, n, logger.Discard())
	require.Error(t, err)
	assert.Equal(t, []string{MsgUpdateFailed}, n.errors)
}

func TestSave_InvalidDoesNotNotify(t *testing.T) {
	api := new(mockAPI)
	n := &recordingNotifier{}

	_, _, err := NewCreate().Save(context.Background(), api, n, logger.Discard())
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Empty(t, n.errors)
	assert.Empty(t, n.successes)
	api.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoad(t *testing.T) {
	api := new(mockAPI)
	api.On("Get", mock.Anything, 2).Return(domain.Product{ID: 2, Name: "Bolsa", Category: "Acessórios"}, nil)
	api.On("Get", mock.Anything, 9).Return(domain.Product{}, errors.New("404"))

	f, err := Load(context.Background(), api, 2)
	require.NoError(t, err)
	assert.Equal(t, "Bolsa", f.Value(FieldName))

	_, err = Load(context.Background(), api, 9)
	assert.Error(t, err)
}
