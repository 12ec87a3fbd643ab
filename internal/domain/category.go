package domain

// Categories is the fixed set a product's category must belong to, in
// display order.
var Categories = []string{
	"Eletrônicos",
	"Roupas",
	"Casa & Jardim",
	"Esportes",
	"Livros",
	"Brinquedos",
	"Saúde & Beleza",
	"Automotivo",
	"Alimentos & Bebidas",
	"Jóias",
	"Acessórios",
	"Outros",
}

var categorySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Categories))
	for _, c := range Categories {
		m[c] = struct{}{}
	}
	return m
}()

// IsValidCategory reports whether c is one of Categories. Matching is exact.
func IsValidCategory(c string) bool {
	_, ok := categorySet[c]
	return ok
}
