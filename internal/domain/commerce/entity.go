// internal/domain/commerce/entity.go
package commerce

// Types mirroring the contract shape of the external commerce API.
// Only the fields the storefront consumes are modeled; everything else the
// API returns is ignored on decode.

// Cart is the server-side shopping cart of an authenticated customer.
type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"shoppingCartItems"`
}

// CartItem is one server-issued line: variant reference, amount and the
// denormalized variant display data the cart screen needs.
type CartItem struct {
	ID        string   `json:"id"`
	VariantID string   `json:"variantId"`
	Amount    int      `json:"amount"`
	Name      string   `json:"name,omitempty"`
	ImageURL  string   `json:"imageUrl,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Currency  string   `json:"currency,omitempty"`
}

// Customer is the resolved profile of an authenticated visitor.
type Customer struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// LoginResult is what a successful store login yields: the bearer
// credential plus (optionally) the customer embedded in the response.
type LoginResult struct {
	AccessToken string    `json:"accessToken"`
	Customer    *Customer `json:"customer,omitempty"`
}

// RegisterRequest carries the fields of a new customer registration.
type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

// Order is the result of a checkout call. Opaque beyond its identity.
type Order struct {
	ID string `json:"id"`
}
