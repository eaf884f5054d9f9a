package orders

import (
	"github.com/google/uuid"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
)

// ShipInput carries the optional carrier details supplied when an admin
// marks an order as shipped.
type ShipInput struct {
	Courier        *string `json:"courier,omitempty"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

// AnnotatedOrder is an order row as seen in listings. BuyerEmail is filled
// for seller and admin views; customers already know who they are.
type AnnotatedOrder struct {
	models.Order
	BuyerEmail string `json:"buyer_email,omitempty"`
}

func annotate(rows []models.Order, emails map[uuid.UUID]string) []AnnotatedOrder {
	out := make([]AnnotatedOrder, 0, len(rows))
	for _, row := range rows {
		entry := AnnotatedOrder{Order: row}
		if emails != nil {
			entry.BuyerEmail = emails[row.ID]
		}
		out = append(out, entry)
	}
	return out
}
