package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themilho/product-catalog/internal/domain"
)

func loadedState(t *testing.T, products []domain.Product) State {
	t.Helper()
	s, cmd := NewState()
	s, applied := s.ApplyLoad(cmd.Generation, products)
	require.True(t, applied)
	return s
}

func TestNewState_EmitsInitialLoad(t *testing.T) {
	s, cmd := NewState()
	require.NotNil(t, cmd)
	assert.Equal(t, uint64(1), cmd.Generation)
	assert.False(t, cmd.FavoritesOnly)
	assert.True(t, s.Loading())
	assert.False(t, s.Loaded())
	assert.Equal(t, DefaultFilters(), s.Filters())
}

func TestState_SettersDoNotLoad(t *testing.T) {
	s := loadedState(t, scenarioProducts())
	gen := s.Generation()

	s = s.WithSearchText("an").WithCategory("Jóias").WithViewMode(domain.ViewList)

	assert.Equal(t, gen, s.Generation())
	assert.Equal(t, []int{1}, ids(s.Visible()))
	assert.Equal(t, domain.ViewList, s.Filters().ViewMode)
}

func TestState_WithCategoryBlankMeansAll(t *testing.T) {
	s := loadedState(t, scenarioProducts()).WithCategory("Jóias").WithCategory("")
	assert.Equal(t, AllCategories, s.Filters().Category)
	assert.Len(t, s.Visible(), 2)
}

func TestState_WithFavoritesOnlyEmitsLoad(t *testing.T) {
	s := loadedState(t, scenarioProducts())

	s, cmd := s.WithFavoritesOnly(true)
	require.NotNil(t, cmd)
	assert.True(t, cmd.FavoritesOnly)
	assert.Equal(t, s.Generation(), cmd.Generation)
	assert.True(t, s.Filters().FavoritesOnly)

	_, again := s.WithFavoritesOnly(true)
	assert.Nil(t, again, "unchanged flag must not reload")
}

func TestState_RefreshUsesCurrentFlag(t *testing.T) {
	s := loadedState(t, scenarioProducts())
	s, _ = s.WithFavoritesOnly(true)

	s, cmd := s.Refresh()
	require.NotNil(t, cmd)
	assert.True(t, cmd.FavoritesOnly)
	assert.Equal(t, uint64(3), cmd.Generation)
}

func TestState_ResetFilters(t *testing.T) {
	s := loadedState(t, scenarioProducts()).
		WithSearchText("zzz").
		WithCategory("Jóias").
		WithViewMode(domain.ViewList)
	assert.Equal(t, EmptyFilteredOut, s.Empty())

	s, cmd := s.ResetFilters()
	assert.Nil(t, cmd, "favorites-only was off")
	assert.Equal(t, "", s.Filters().SearchText)
	assert.Equal(t, AllCategories, s.Filters().Category)
	assert.Equal(t, domain.ViewList, s.Filters().ViewMode)
	assert.Len(t, s.Visible(), 2)

	s, _ = s.WithFavoritesOnly(true)
	s, cmd = s.ResetFilters()
	require.NotNil(t, cmd)
	assert.False(t, cmd.FavoritesOnly)
	assert.False(t, s.Filters().FavoritesOnly)
}

func TestState_StaleLoadDiscarded(t *testing.T) {
	s := loadedState(t, scenarioProducts())

	s, first := s.WithFavoritesOnly(true)
	s, second := s.WithFavoritesOnly(false)

	s, applied := s.ApplyLoad(second.Generation, scenarioProducts())
	require.True(t, applied)

	late := []domain.Product{{ID: 99, Name: "late", Category: "Outros"}}
	s, applied = s.ApplyLoad(first.Generation, late)
	assert.False(t, applied)
	assert.Equal(t, []int{1, 2}, ids(s.Products()))

	s, applied = s.ApplyLoadError(first.Generation, errors.New("late failure"))
	assert.False(t, applied)
	assert.NoError(t, s.LoadErr())
}

func TestState_LoadErrorKeepsCollection(t *testing.T) {
	s := loadedState(t, scenarioProducts())
	s, cmd := s.Refresh()

	s, applied := s.ApplyLoadError(cmd.Generation, errors.New("boom"))
	require.True(t, applied)
	assert.EqualError(t, s.LoadErr(), "boom")
	assert.False(t, s.Loading())
	assert.Equal(t, []int{1, 2}, ids(s.Products()))

	s, cmd = s.Refresh()
	s, _ = s.ApplyLoad(cmd.Generation, nil)
	assert.NoError(t, s.LoadErr())
	assert.Equal(t, EmptyNoProducts, s.Empty())
}

func TestState_Scenario(t *testing.T) {
	s := loadedState(t, scenarioProducts())

	s = s.WithSearchText("an")
	assert.Equal(t, []int{1}, ids(s.Visible()))

	s = s.WithSearchText("")
	s, cmd := s.WithFavoritesOnly(true)
	require.NotNil(t, cmd)
	assert.Equal(t, []int{1}, ids(s.Visible()))

	s, cmd = s.WithFavoritesOnly(false)
	require.NotNil(t, cmd)
	s = s.WithCategory("Acessórios")
	assert.Equal(t, []int{2}, ids(s.Visible()))
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "0 itens encontrados", Summary(0))
	assert.Equal(t, "1 item encontrados", Summary(1))
	assert.Equal(t, "2 itens encontrados", Summary(2))
	assert.Equal(t, "2 itens encontrados", loadedState(t, scenarioProducts()).Summary())
}

func TestState_Categories(t *testing.T) {
	s := loadedState(t, scenarioProducts())
	assert.Equal(t, []string{AllCategories, "Jóias", "Acessórios"}, s.Categories())
}
