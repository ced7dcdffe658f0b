package domain

// CartItem is one cart line. Lines are deduplicated on (ProductID, SelectedSize).
type CartItem struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selectedSize"`
	SelectedColor string `json:"selectedColor"`
}

// SameLine reports whether two items share the cart dedup key.
func (c CartItem) SameLine(other CartItem) bool {
	return c.ProductID == other.ProductID && c.SelectedSize == other.SelectedSize
}

// MinQuantity is the smallest quantity a cart line can hold.
const MinQuantity = 1

// ClampQuantity raises anything below MinQuantity to MinQuantity.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	return q
}
