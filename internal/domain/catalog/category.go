package catalog

// Category is a denormalized read model of a catalog category. The
// parent reference makes a self-referential tree, one level deep in
// practice.
type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	ParentID    *string `json:"parent_id,omitempty"`
	Active      bool    `json:"active"`
}

// IsRoot returns true if the category has no parent
func (c *Category) IsRoot() bool {
	return c.ParentID == nil || *c.ParentID == ""
}

// CategoryNode is a category with its resolved children, built once so
// screens never chase parent references ad hoc.
type CategoryNode struct {
	Category
	Children []CategoryNode `json:"children"`
}

// BuildCategoryTree assembles the shallow tree from a flat category
// list. Children keep the input order; a child whose parent is missing
// from the list is promoted to a root rather than dropped.
func BuildCategoryTree(categories []Category) []CategoryNode {
	byID := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		byID[c.ID] = struct{}{}
	}

	children := make(map[string][]CategoryNode)
	roots := make([]CategoryNode, 0, len(categories))
	for _, c := range categories {
		node := CategoryNode{Category: c, Children: []CategoryNode{}}
		if c.IsRoot() {
			roots = append(roots, node)
			continue
		}
		parentID := *c.ParentID
		if _, ok := byID[parentID]; !ok {
			roots = append(roots, node)
			continue
		}
		children[parentID] = append(children[parentID], node)
	}

	for i := range roots {
		if kids, ok := children[roots[i].ID]; ok {
			roots[i].Children = kids
		}
	}
	return roots
}
