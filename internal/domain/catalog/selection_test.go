package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variantFixture() []Variant {
	return []Variant{
		{ID: "v1", ProductID: "p1", SKU: "TEE-S-RED", Size: "S", Color: "Red", Stock: 0, Active: true},
		{ID: "v2", ProductID: "p1", SKU: "TEE-M-RED", Size: "M", Color: "Red", Stock: 5, Active: true},
		{ID: "v3", ProductID: "p1", SKU: "TEE-M-BLUE", Size: "M", Color: "Blue", Stock: 3, Active: true},
	}
}

func TestSelectionMatrix(t *testing.T) {
	t.Run("selecting size M offers red and blue", func(t *testing.T) {
		m := NewSelectionMatrix(variantFixture())
		assert.Equal(t, []string{"Red", "Blue"}, m.ColorsForSize("M"))
	})

	t.Run("zero stock stays selectable and is flagged sold out", func(t *testing.T) {
		m := NewSelectionMatrix(variantFixture())
		assert.Equal(t, []string{"Red"}, m.ColorsForSize("S"))

		v := m.Resolve("S", "Red")
		require.NotNil(t, v)
		assert.Equal(t, StockLevelSoldOut, v.StockLevel())
	})

	t.Run("inactive variants are excluded entirely", func(t *testing.T) {
		variants := variantFixture()
		variants[0].Active = false
		m := NewSelectionMatrix(variants)

		assert.Empty(t, m.ColorsForSize("S"))
		assert.Nil(t, m.Resolve("S", "Red"))
	})

	t.Run("no active variants means unavailable", func(t *testing.T) {
		m := NewSelectionMatrix(nil)
		assert.True(t, m.IsUnavailable())
		assert.Empty(t, m.Sizes())

		m = NewSelectionMatrix([]Variant{{Size: "M", Color: "Red", Active: false}})
		assert.True(t, m.IsUnavailable())
	})

	t.Run("incomplete selection resolves to nil", func(t *testing.T) {
		m := NewSelectionMatrix(variantFixture())
		assert.Nil(t, m.Resolve("M", ""))
		assert.Nil(t, m.Resolve("", "Red"))
	})

	t.Run("non-existent combination resolves to nil", func(t *testing.T) {
		m := NewSelectionMatrix(variantFixture())
		assert.Nil(t, m.Resolve("S", "Blue"))
	})
}

func TestSelectionNarrowing(t *testing.T) {
	t.Run("cross-axis pick without active variant is disabled", func(t *testing.T) {
		s := NewSelection(NewSelectionMatrix(variantFixture()))
		s.SelectSize("S")

		for _, opt := range s.ColorOptions() {
			if opt.Value == "Blue" {
				assert.False(t, opt.Enabled, "Blue has no active S variant")
			}
			if opt.Value == "Red" {
				assert.True(t, opt.Enabled)
			}
		}
	})

	t.Run("dangling color is cleared when size narrows it out", func(t *testing.T) {
		s := NewSelection(NewSelectionMatrix(variantFixture()))
		s.SelectColor("Blue")
		s.SelectSize("S")

		assert.Empty(t, s.Color, "Blue has no S variant, selection must not dangle")
		assert.Nil(t, s.Resolved())
	})

	t.Run("dangling size is cleared when color narrows it out", func(t *testing.T) {
		variants := []Variant{
			{ID: "v1", Size: "S", Color: "Red", Stock: 2, Active: true},
			{ID: "v2", Size: "M", Color: "Blue", Stock: 2, Active: true},
		}
		s := NewSelection(NewSelectionMatrix(variants))
		s.SelectSize("S")
		s.SelectColor("Blue")

		assert.Empty(t, s.Size)
	})

	t.Run("complete selection surfaces the variant", func(t *testing.T) {
		s := NewSelection(NewSelectionMatrix(variantFixture()))
		s.SelectSize("M")
		s.SelectColor("Blue")

		v := s.Resolved()
		require.NotNil(t, v)
		assert.Equal(t, "v3", v.ID)
		assert.Equal(t, StockLevelLimited, v.StockLevel())
	})

	t.Run("single-option axes are pre-selected", func(t *testing.T) {
		variants := []Variant{
			{ID: "v1", Size: "M", Color: "Black", Stock: 8, Active: true},
		}
		s := NewSelection(NewSelectionMatrix(variants))

		assert.Equal(t, "M", s.Size)
		assert.Equal(t, "Black", s.Color)
		require.NotNil(t, s.Resolved())
	})

	t.Run("multi-option axes start unselected", func(t *testing.T) {
		s := NewSelection(NewSelectionMatrix(variantFixture()))
		assert.Empty(t, s.Size)
		assert.Empty(t, s.Color)
	})
}
