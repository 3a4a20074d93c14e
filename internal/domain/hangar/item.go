package hangar

import "strings"

// Item is one owned upgrade certificate (CCU) imported from the user's
// hangar. From/To names are parsed out of the store item name; Quantity is
// how many identical certificates the user holds.
type Item struct {
	Name         string
	FromShipName string
	ToShipName   string
	Value        int64 // purchase value in official currency, cents
	Quantity     int
}

// NewItem creates an Item, parsing the ship pair out of the store name when
// the from/to fields are empty.
func NewItem(name string, value int64, quantity int) *Item {
	item := &Item{
		Name:     name,
		Value:    value,
		Quantity: quantity,
	}
	if from, to, ok := ParseUpgradeName(name); ok {
		item.FromShipName = from
		item.ToShipName = to
	}
	return item
}

// ParseUpgradeName extracts the (from, to) ship names from a store upgrade
// item name. The store convention is
//
//	"Upgrade - <From> to <To>"
//
// with an optional "- Warbond" (or "Warbond Edition") suffix. Returns
// ok=false when the name does not follow the convention.
func ParseUpgradeName(name string) (from, to string, ok bool) {
	trimmed := strings.TrimSpace(name)

	// Strip the leading marker; some exports put "Upgrade" at the end instead.
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "upgrade -"):
		trimmed = strings.TrimSpace(trimmed[len("upgrade -"):])
	case strings.HasPrefix(lower, "upgrade:"):
		trimmed = strings.TrimSpace(trimmed[len("upgrade:"):])
	case strings.HasSuffix(lower, "upgrade"):
		trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len("upgrade")])
	}

	// Strip warbond suffixes before splitting.
	for _, suffix := range []string{"- warbond edition", "- warbond", "warbond edition", "warbond"} {
		lower = strings.ToLower(trimmed)
		if strings.HasSuffix(lower, suffix) {
			trimmed = strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
		}
	}
	trimmed = strings.TrimSpace(strings.TrimSuffix(trimmed, "-"))

	idx := indexOfSeparator(trimmed)
	if idx < 0 {
		return "", "", false
	}

	from = strings.TrimSpace(trimmed[:idx])
	to = strings.TrimSpace(trimmed[idx+len(" to "):])
	if from == "" || to == "" {
		return "", "", false
	}
	return from, to, true
}

// indexOfSeparator finds the first case-insensitive " to " word separator.
func indexOfSeparator(s string) int {
	lower := strings.ToLower(s)
	return strings.Index(lower, " to ")
}

// Match returns the first item whose parsed pair matches the given ship
// names (case-insensitive), or nil.
func Match(items []*Item, fromName, toName string) *Item {
	for _, item := range items {
		if strings.EqualFold(item.FromShipName, fromName) &&
			strings.EqualFold(item.ToShipName, toName) {
			return item
		}
	}
	return nil
}
