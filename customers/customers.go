package customers

import "github.com/jrsteele09/wave-console/paging"

type Customer struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// Page is one page of GET /customers.
type Page struct {
	Customers []Customer `json:"customers"`
	paging.Meta
}

// Find returns the customer with id from the page, if present.
func (p Page) Find(id int64) (Customer, bool) {
	for _, c := range p.Customers {
		if c.ID == id {
			return c, true
		}
	}
	return Customer{}, false
}
