package models

// ProductModel describes the products table. category_id is a required
// reference to an existing category; in_store falls back to the column
// default (false) when absent from the payload.
func ProductModel() *Model {
	return &Model{
		Table: "products",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "price_rub", Kind: KindInt, Required: true, Rules: "gte=0"},
			{Name: "image_url", Kind: KindString},
			{Name: "in_store", Kind: KindBool},
			{Name: "params", Kind: KindString, Required: true},
			{Name: "category_id", Kind: KindInt, Required: true, Rules: "gt=0"},
		},
		SearchField: "title",
	}
}

// CategoryModel describes the categories table. slug uniqueness is advisory,
// the table carries no unique constraint.
func CategoryModel() *Model {
	return &Model{
		Table: "categories",
		Fields: []Field{
			{Name: "title", Kind: KindString, Required: true},
			{Name: "slug", Kind: KindString, Required: true},
			{Name: "is_visible", Kind: KindBool},
		},
		SearchField: "title",
	}
}
