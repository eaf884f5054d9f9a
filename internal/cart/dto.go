package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radityaprast/pasarlokal-backend/pkg/db/models"
)

// AddItemInput adds a product to the cart or bumps its quantity.
type AddItemInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
}

// ItemDTO is a cart line with its product snapshot and line subtotal.
type ItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// DTO is the customer's cart with a running total.
type DTO struct {
	ID        uuid.UUID       `json:"id"`
	Items     []ItemDTO       `json:"items"`
	Total     decimal.Decimal `json:"total"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func fromModel(m *models.Cart) *DTO {
	dto := &DTO{
		ID:        m.ID,
		Items:     make([]ItemDTO, 0, len(m.Items)),
		Total:     decimal.Zero,
		UpdatedAt: m.UpdatedAt,
	}
	for _, item := range m.Items {
		line := ItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			line.Name = item.Product.Name
			line.Price = item.Product.Price
			line.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		}
		dto.Total = dto.Total.Add(line.Subtotal)
		dto.Items = append(dto.Items, line)
	}
	return dto
}
