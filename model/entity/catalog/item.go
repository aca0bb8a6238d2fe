package catalog

// Item is a catalog product as the commerce backend returns it. Immutable
// from the resolver's point of view; the backend owns the catalog.
type Item struct {
	ID                uint    `json:"id" mapstructure:"id"`
	ShopifyID         int64   `json:"shopify_id,omitempty" mapstructure:"shopify_id"`
	Title             string  `json:"title" mapstructure:"title"`
	SKU               string  `json:"sku,omitempty" mapstructure:"sku"`
	Barcode           string  `json:"barcode,omitempty" mapstructure:"barcode"`
	Price             float64 `json:"price" mapstructure:"price"`
	InventoryQuantity int     `json:"inventory_quantity" mapstructure:"inventory_quantity"`
	VariantTitle      string  `json:"variant_title,omitempty" mapstructure:"variant_title"`
	ImageURL          string  `json:"image_url,omitempty" mapstructure:"image_url"`
}

// InStock reports whether the item can be sold right now.
func (i Item) InStock() bool {
	return i.InventoryQuantity > 0
}

// Code returns the preferred order-line identifier: barcode, then SKU.
func (i Item) Code() string {
	if i.Barcode != "" {
		return i.Barcode
	}
	return i.SKU
}
