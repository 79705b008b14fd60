package repository

import "gorm.io/gorm"

// ListFilter narrows the candidate set for a listing operation. It is
// resolved once at construction instead of branching on raw optionals in
// every query.
type ListFilter struct {
	category string
	byCat    bool
}

// FilterAll selects every prompt owned by the user.
func FilterAll() ListFilter {
	return ListFilter{}
}

// FilterByCategory selects only prompts in the given category.
func FilterByCategory(category string) ListFilter {
	return ListFilter{category: category, byCat: true}
}

func (f ListFilter) apply(db *gorm.DB) *gorm.DB {
	if f.byCat {
		return db.Where("category = ?", f.category)
	}
	return db
}
