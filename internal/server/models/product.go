package models

// Product is a stored product. Price is kept as text so both "9.99" and
// 9.99 from clients round-trip without loss.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}
