package order

import customerEntity "meezy.GO/model/entity/customer"

// Payment method tags accepted by the backend.
const (
	PaymentCash = "cash"
	PaymentPOS  = "pos"
)

// Item is one order line on a create-order request. Standard lines carry a
// barcode-or-SKU plus quantity; custom lines carry a full descriptor.
type Item struct {
	Barcode  string  `json:"barcode,omitempty"`
	Quantity int     `json:"quantity"`
	Type     string  `json:"type,omitempty"`
	Title    string  `json:"title,omitempty"`
	Size     string  `json:"size,omitempty"`
	Price    float64 `json:"price,omitempty"`
}

// CreateRequest is the order submission payload. The backend owns all price,
// stock and discount re-validation.
type CreateRequest struct {
	Items          []Item               `json:"items"`
	PaymentMethod  string               `json:"payment_method"`
	Email          string               `json:"email,omitempty"`
	NewCustomer    *customerEntity.New  `json:"new_customer,omitempty"`
	Discount       float64              `json:"discount,omitempty"`
	DiscountReason string               `json:"discount_reason,omitempty"`
}

// CreateResponse is the backend confirmation for a submitted order.
type CreateResponse struct {
	Status             string  `json:"status" mapstructure:"status"`
	Message            string  `json:"message" mapstructure:"message"`
	ShopifyOrderID     int64   `json:"shopify_order_id" mapstructure:"shopify_order_id"`
	ShopifyOrderNumber int64   `json:"shopify_order_number" mapstructure:"shopify_order_number"`
	OriginalAmount     float64 `json:"original_amount" mapstructure:"original_amount"`
	FinalAmount        float64 `json:"final_amount" mapstructure:"final_amount"`
	ItemsCount         int     `json:"items_count" mapstructure:"items_count"`
	DiscountApplied    float64 `json:"discount_applied,omitempty" mapstructure:"discount_applied"`
	DiscountReason     string  `json:"discount_reason,omitempty" mapstructure:"discount_reason"`
}

// PaymentBucket is one payment method's share of a day's sales.
type PaymentBucket struct {
	Count  int     `json:"count" mapstructure:"count"`
	Amount float64 `json:"amount" mapstructure:"amount"`
}

// DailyStats arrives pre-aggregated from the backend; the POS only displays it.
type DailyStats struct {
	Status           string                   `json:"status" mapstructure:"status"`
	Date             string                   `json:"date" mapstructure:"date"`
	TotalOrders      int                      `json:"total_orders" mapstructure:"total_orders"`
	TotalSales       float64                  `json:"total_sales" mapstructure:"total_sales"`
	CashSales        float64                  `json:"cash_sales" mapstructure:"cash_sales"`
	PosSales         float64                  `json:"pos_sales" mapstructure:"pos_sales"`
	PaymentBreakdown map[string]PaymentBucket `json:"payment_breakdown" mapstructure:"payment_breakdown"`
}
