package checkout

import (
	"strings"

	"github.com/velora/storefront/internal/domain/shared"
)

// ShippingInfo holds the recipient and address form values. Address
// line 2 is the only optional field.
type ShippingInfo struct {
	RecipientName string `json:"recipient_name"`
	Phone         string `json:"phone"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city"`
	Province      string `json:"province"`
	PostalCode    string `json:"postal_code"`
}

// MissingFields returns the names of required fields that are blank
func (s ShippingInfo) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"recipient_name", s.RecipientName},
		{"phone", s.Phone},
		{"address_line1", s.AddressLine1},
		{"city", s.City},
		{"province", s.Province},
		{"postal_code", s.PostalCode},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Validate rejects the form when any required field is blank
func (s ShippingInfo) Validate() error {
	if missing := s.MissingFields(); len(missing) > 0 {
		return shared.NewDomainError("SHIPPING_INCOMPLETE",
			"Required shipping fields are missing: "+strings.Join(missing, ", "))
	}
	return nil
}

// IsComplete returns true when every required field is filled
func (s ShippingInfo) IsComplete() bool {
	return len(s.MissingFields()) == 0
}
