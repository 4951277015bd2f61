package items

import "github.com/jrsteele09/wave-console/paging"

type Tax struct {
	ID     int64   `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Item is a product or service that can be put on an estimate.
type Item struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Taxes       []Tax   `json:"taxes"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// Page is one page of GET /items.
type Page struct {
	Items []Item `json:"items"`
	paging.Meta
}

func (p Page) Find(id int64) (Item, bool) {
	for _, it := range p.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
