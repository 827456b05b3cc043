package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velora/storefront/internal/domain/shared"
	"github.com/velora/storefront/internal/domain/shared/valueobject"
)

func TestParseImageList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "https://cdn.example.com/a.jpg", []string{"https://cdn.example.com/a.jpg"}},
		{"pipe delimited", "a.jpg|b.jpg|c.jpg", []string{"a.jpg", "b.jpg", "c.jpg"}},
		{"drops blank segments", "a.jpg||  |b.jpg", []string{"a.jpg", "b.jpg"}},
		{"trims whitespace", " a.jpg | b.jpg ", []string{"a.jpg", "b.jpg"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseImageList(tt.raw))
		})
	}
}

func TestJoinImageList(t *testing.T) {
	assert.Equal(t, "a.jpg|b.jpg", JoinImageList([]string{"a.jpg", "b.jpg"}))
	assert.Equal(t, "", JoinImageList(nil))
}

func TestProductPrimaryImage(t *testing.T) {
	p := Product{Images: []string{"first.jpg", "second.jpg"}}
	assert.Equal(t, "first.jpg", p.PrimaryImage())

	empty := Product{}
	assert.Equal(t, "", empty.PrimaryImage())
}

func TestProductIsPurchasable(t *testing.T) {
	tests := []struct {
		name   string
		status ProductStatus
		active bool
		want   bool
	}{
		{"active ready", ProductStatusReady, true, true},
		{"active preorder", ProductStatusPreorder, true, true},
		{"inactive ready", ProductStatusReady, false, false},
		{"active discontinued", ProductStatusDiscontinued, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Status: tt.status, Active: tt.active}
			assert.Equal(t, tt.want, p.IsPurchasable())
		})
	}
}

func TestProductStatusBadge(t *testing.T) {
	ready := Product{Status: ProductStatusReady}
	assert.Equal(t, shared.Badge{Label: "Ready Stock", Tone: shared.ToneSuccess}, ready.StatusBadge())

	po := Product{Status: ProductStatusPreorder}
	assert.Equal(t, shared.ToneInfo, po.StatusBadge().Tone)
}

func TestVariantUnitPrice(t *testing.T) {
	base := valueobject.NewMoneyIDRFromInt(150000)

	t.Run("falls back to base price", func(t *testing.T) {
		v := Variant{}
		assert.True(t, v.UnitPrice(base).Equals(base))
	})

	t.Run("uses override when present", func(t *testing.T) {
		override := valueobject.NewMoneyIDRFromInt(135000)
		v := Variant{PriceOverride: &override}
		assert.True(t, v.UnitPrice(base).Equals(override))
	})
}

func TestClassifyStock(t *testing.T) {
	tests := []struct {
		stock int
		want  StockLevel
	}{
		{25, StockLevelSafe},
		{11, StockLevelSafe},
		{10, StockLevelLimited},
		{1, StockLevelLimited},
		{0, StockLevelSoldOut},
		{-1, StockLevelSoldOut},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyStock(tt.stock))
	}
}

func TestVariantStockBadge(t *testing.T) {
	limited := Variant{Stock: 3}
	badge := limited.StockBadge()
	assert.Equal(t, "Only 3 left", badge.Label)
	assert.Equal(t, shared.ToneWarning, badge.Tone)

	soldOut := Variant{Stock: 0}
	assert.Equal(t, shared.ToneDanger, soldOut.StockBadge().Tone)
}

func TestBuildSKU(t *testing.T) {
	tests := []struct {
		name          string
		slug, size    string
		color         string
		disambiguator int
		want          string
	}{
		{"basic", "linen-shirt", "M", "Red", 0, "LINEN-SHIRT-M-RED"},
		{"multi word color", "linen-shirt", "L", "Navy Blue", 0, "LINEN-SHIRT-L-NAVY-BLUE"},
		{"with disambiguator", "linen-shirt", "M", "Red", 2, "LINEN-SHIRT-M-RED-2"},
		{"trims input", " linen-shirt ", " m ", "red", 0, "LINEN-SHIRT-M-RED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildSKU(tt.slug, tt.size, tt.color, tt.disambiguator))
		})
	}
}
