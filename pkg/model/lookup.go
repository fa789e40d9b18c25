// pkg/model/lookup.go
package model

// CategoryLookup is a read-only projection of (product key -> category)
// used for category-aware unit-value imputation on sales. It is a lookup,
// never ownership: building it does not retain the products table.
type CategoryLookup map[int64]string

// BuildCategoryLookup projects key/category pairs out of a repaired
// products table. Records with an unusable key are skipped.
func BuildCategoryLookup(products *Table, categoryField string) CategoryLookup {
	lookup := make(CategoryLookup, products.Len())
	for i := range products.Records {
		key, err := AsInt(products.Key(i))
		if err != nil {
			continue
		}
		cat := AsString(products.Records[i].Get(categoryField))
		if cat != "" {
			lookup[key] = cat
		}
	}
	return lookup
}

// Category resolves the category for a product key value as it appears in
// a sales record. The second return is false when the key is unusable or
// no product carries it.
func (l CategoryLookup) Category(productKey interface{}) (string, bool) {
	key, err := AsInt(productKey)
	if err != nil {
		return "", false
	}
	cat, ok := l[key]
	return cat, ok
}
