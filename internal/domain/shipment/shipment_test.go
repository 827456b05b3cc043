package shipment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velora/storefront/internal/domain/shared"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	for _, s := range []Status{StatusPending, StatusReadyToShip, StatusShipped, StatusInTransit} {
		assert.False(t, s.IsTerminal(), string(s))
	}
}

func TestIsTrackable(t *testing.T) {
	tests := []struct {
		name     string
		shipment Shipment
		want     bool
	}{
		{"in transit with tracking number", Shipment{TrackingNumber: "JNE123", Status: StatusInTransit}, true},
		{"no tracking number yet", Shipment{Status: StatusShipped}, false},
		{"already delivered", Shipment{TrackingNumber: "JNE123", Status: StatusDelivered}, false},
		{"cancelled", Shipment{TrackingNumber: "JNE123", Status: StatusCancelled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shipment.IsTrackable())
		})
	}
}

func TestBadge(t *testing.T) {
	assert.Equal(t, shared.Badge{Label: "Ready to Ship", Tone: shared.ToneInfo}, StatusReadyToShip.Badge())
	assert.Equal(t, shared.Badge{Label: "Delivered", Tone: shared.ToneSuccess}, StatusDelivered.Badge())
}
