package catalog

// SelectionMatrix derives the valid (size x color) combinations from a
// product's flat variant list. Only active variants participate; a
// variant with zero stock stays selectable and is surfaced as sold out
// rather than excluded.
type SelectionMatrix struct {
	variants []Variant
}

// NewSelectionMatrix builds a matrix over the active variants of one product
func NewSelectionMatrix(variants []Variant) *SelectionMatrix {
	active := make([]Variant, 0, len(variants))
	for _, v := range variants {
		if v.Active {
			active = append(active, v)
		}
	}
	return &SelectionMatrix{variants: active}
}

// IsUnavailable returns true when the product has no active variants at
// all; callers render an explicit unavailable state and no selection is
// possible.
func (m *SelectionMatrix) IsUnavailable() bool {
	return len(m.variants) == 0
}

// Sizes returns the distinct sizes in first-appearance order
func (m *SelectionMatrix) Sizes() []string {
	return m.distinct(func(v Variant) string { return v.Size })
}

// Colors returns the distinct colors in first-appearance order
func (m *SelectionMatrix) Colors() []string {
	return m.distinct(func(v Variant) string { return v.Color })
}

// ColorsForSize returns the colors that have an active variant in the
// given size. An empty size returns every color.
func (m *SelectionMatrix) ColorsForSize(size string) []string {
	if size == "" {
		return m.Colors()
	}
	return m.distinctWhere(
		func(v Variant) bool { return v.Size == size },
		func(v Variant) string { return v.Color },
	)
}

// SizesForColor returns the sizes that have an active variant in the
// given color. An empty color returns every size.
func (m *SelectionMatrix) SizesForColor(color string) []string {
	if color == "" {
		return m.Sizes()
	}
	return m.distinctWhere(
		func(v Variant) bool { return v.Color == color },
		func(v Variant) string { return v.Size },
	)
}

// Resolve returns the single active variant matching both axes, or nil
// while the selection is incomplete or matches nothing.
func (m *SelectionMatrix) Resolve(size, color string) *Variant {
	if size == "" || color == "" {
		return nil
	}
	for i := range m.variants {
		if m.variants[i].Size == size && m.variants[i].Color == color {
			return &m.variants[i]
		}
	}
	return nil
}

func (m *SelectionMatrix) distinct(key func(Variant) string) []string {
	return m.distinctWhere(func(Variant) bool { return true }, key)
}

func (m *SelectionMatrix) distinctWhere(match func(Variant) bool, key func(Variant) string) []string {
	seen := make(map[string]struct{}, len(m.variants))
	out := make([]string, 0, len(m.variants))
	for _, v := range m.variants {
		if !match(v) {
			continue
		}
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Selection tracks a customer's in-progress size/color choice against a
// matrix. Picking one axis narrows the other; a choice that becomes
// invalid after narrowing is cleared rather than left dangling.
type Selection struct {
	matrix *SelectionMatrix

	Size  string
	Color string
}

// NewSelection starts a selection over the matrix, pre-selecting any
// axis that has exactly one option.
func NewSelection(matrix *SelectionMatrix) *Selection {
	s := &Selection{matrix: matrix}
	if sizes := matrix.Sizes(); len(sizes) == 1 {
		s.Size = sizes[0]
	}
	if colors := matrix.Colors(); len(colors) == 1 {
		s.Color = colors[0]
	}
	return s
}

// SelectSize picks a size and clears the color if no active variant
// exists for the new (size, color) pair.
func (s *Selection) SelectSize(size string) {
	s.Size = size
	if s.Color != "" && !contains(s.matrix.ColorsForSize(size), s.Color) {
		s.Color = ""
	}
}

// SelectColor picks a color and clears the size if no active variant
// exists for the new (size, color) pair.
func (s *Selection) SelectColor(color string) {
	s.Color = color
	if s.Size != "" && !contains(s.matrix.SizesForColor(color), s.Size) {
		s.Size = ""
	}
}

// ColorOptions returns every color with its enabled flag under the
// current size choice; disabled options must not be selectable.
func (s *Selection) ColorOptions() []AxisOption {
	return axisOptions(s.matrix.Colors(), s.matrix.ColorsForSize(s.Size))
}

// SizeOptions returns every size with its enabled flag under the
// current color choice.
func (s *Selection) SizeOptions() []AxisOption {
	return axisOptions(s.matrix.Sizes(), s.matrix.SizesForColor(s.Color))
}

// Resolved surfaces the chosen variant once both axes resolve to one
// existing active variant; any incomplete selection surfaces nil.
func (s *Selection) Resolved() *Variant {
	return s.matrix.Resolve(s.Size, s.Color)
}

// AxisOption is a single size or color choice with its availability
// under the opposite axis's current selection.
type AxisOption struct {
	Value   string `json:"value"`
	Enabled bool   `json:"enabled"`
}

func axisOptions(all, enabled []string) []AxisOption {
	opts := make([]AxisOption, 0, len(all))
	for _, v := range all {
		opts = append(opts, AxisOption{Value: v, Enabled: contains(enabled, v)})
	}
	return opts
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
