package enrich

import "strings"

// nameCategories maps product-name keywords to categories. First match wins,
// so more specific keywords come first.
var nameCategories = []struct {
	keywords []string
	category string
}{
	{[]string{"laptop"}, "Computers"},
	{[]string{"mouse", "keyboard"}, "Peripherals"},
	{[]string{"monitor", "webcam"}, "Display Devices"},
	{[]string{"headphone"}, "Audio Equipment"},
	{[]string{"cable", "charger"}, "Accessories"},
	{[]string{"hard drive"}, "Storage Devices"},
}

// CategorizeName guesses a category from the product name. It is the
// fallback used when the catalog has no entry for a product; unknown names
// land in the catch-all "Electronics" category.
func CategorizeName(productName string) string {
	name := strings.ToLower(productName)

	for _, entry := range nameCategories {
		for _, keyword := range entry.keywords {
			if strings.Contains(name, keyword) {
				return entry.category
			}
		}
	}

	return "Electronics"
}
