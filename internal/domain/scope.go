package domain

// Scope narrows a resource to the children of a parent record. The zero value
// addresses the whole resource.
type Scope struct {
	Parent   string
	ParentID int64
}

const ScopeParentCategory = "category"

// CategoryScope selects the products belonging to category id.
func CategoryScope(id int64) Scope {
	return Scope{Parent: ScopeParentCategory, ParentID: id}
}

func (s Scope) IsZero() bool {
	return s.Parent == ""
}
