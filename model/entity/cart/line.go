package cart

import catalogEntity "meezy.GO/model/entity/catalog"

// Line types. Standard lines reference a catalog item; custom lines are
// synthesized at the register and have no backing catalog entry.
const (
	TypeStandard = ""
	TypeCustom   = "custom"
)

// Line is one cart entry. The Item field is the cart's own copy, not a live
// catalog reference, so later catalog changes never alter a placed line.
type Line struct {
	Key      string              `json:"key"`
	Item     catalogEntity.Item  `json:"item"`
	Quantity int                 `json:"quantity"`
	Type     string              `json:"type,omitempty"`
	Size     string              `json:"size,omitempty"`
}

// Subtotal is price × quantity for this line.
func (l Line) Subtotal() float64 {
	return l.Item.Price * float64(l.Quantity)
}

// IsCustom reports whether the line was synthesized at the register.
func (l Line) IsCustom() bool {
	return l.Type == TypeCustom
}
