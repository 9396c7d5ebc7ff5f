package ordering

import "context"

// DeliveryLocation is the selected shipping destination for an order.
// It is either one of the fixed presets or a result picked from the
// address-lookup collaborator; the core treats it as opaque text.
type DeliveryLocation struct {
	Label   string `json:"label"`
	Address string `json:"address"`
}

// IsZero reports whether no location has been selected
func (l DeliveryLocation) IsZero() bool {
	return l.Label == "" && l.Address == ""
}

// LocationSearcher is the port to the external address-lookup
// collaborator. Implementations return candidate locations for a
// free-text query and degrade to an empty result on upstream failure.
type LocationSearcher interface {
	Search(ctx context.Context, query string) ([]DeliveryLocation, error)
}

// PresetLocations returns the fixed delivery locations offered before
// the buyer searches for an address.
func PresetLocations() []DeliveryLocation {
	return []DeliveryLocation{
		{Label: "Home - Main Address", Address: "123 Main St, Kathmandu"},
		{Label: "Work - Office Address", Address: "456 Business Ave, Lalitpur"},
		{Label: "Other Address", Address: "789 Oak Ln, Pokhara"},
	}
}
