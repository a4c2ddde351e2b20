package orders

// ValidateCreate rejects an order request before any gateway call or
// persistence write happens.
func ValidateCreate(c Customer, a ShippingAddress, items []Item) error {
	if c.Name == "" || c.Email == "" || c.Phone == "" {
		return &ValidationError{Msg: "Customer name, email, and phone are required."}
	}
	if a.Line1 == "" || a.City == "" || a.State == "" || a.PostalCode == "" || a.Country == "" {
		return &ValidationError{Msg: "Complete shipping address is required."}
	}
	if len(items) == 0 {
		return &ValidationError{Msg: "At least one item is required."}
	}
	return nil
}
