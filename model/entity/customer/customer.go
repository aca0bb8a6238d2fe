package customer

// Customer is a customer record as the commerce backend returns it.
type Customer struct {
	ID        uint   `json:"id" mapstructure:"id"`
	ShopifyID int64  `json:"shopify_id,omitempty" mapstructure:"shopify_id"`
	FirstName string `json:"first_name" mapstructure:"first_name"`
	LastName  string `json:"last_name" mapstructure:"last_name"`
	Email     string `json:"email" mapstructure:"email"`
	Phone     string `json:"phone,omitempty" mapstructure:"phone"`
	City      string `json:"city,omitempty" mapstructure:"city"`
	Country   string `json:"country,omitempty" mapstructure:"country"`
}

// FullName joins first and last name for operator-facing messages.
func (c Customer) FullName() string {
	if c.FirstName == "" {
		return c.LastName
	}
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// Address is the nested address block on new-customer submissions.
type Address struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country"`
	Zip      string `json:"zip,omitempty"`
}

// New is the payload for creating a customer during checkout.
type New struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Address   *Address `json:"address,omitempty"`
}
