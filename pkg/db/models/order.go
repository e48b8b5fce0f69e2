package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/enums"
)

// Order is a checkout submission: the validated shipping address plus a
// snapshot of the cart lines and computed totals at submit time.
type Order struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	SessionID string    `gorm:"column:session_id;not null;index"`

	FirstName string `gorm:"column:first_name;not null"`
	LastName  string `gorm:"column:last_name;not null"`
	Email     string `gorm:"column:email;not null"`
	Phone     string `gorm:"column:phone;not null"`
	Address   string `gorm:"column:address;not null"`
	City      string `gorm:"column:city;not null"`
	State     string `gorm:"column:state;not null"`
	ZipCode   string `gorm:"column:zip_code;not null"`
	Country   string `gorm:"column:country;not null"`

	ShippingOptionID string  `gorm:"column:shipping_option_id;not null"`
	CouponCode       *string `gorm:"column:coupon_code"`

	Subtotal decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
	Discount decimal.Decimal `gorm:"column:discount;type:numeric(12,2);not null"`
	Tax      decimal.Decimal `gorm:"column:tax;type:numeric(12,2);not null"`
	Shipping decimal.Decimal `gorm:"column:shipping;type:numeric(12,2);not null"`
	Total    decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`

	Status        enums.OrderStatus    `gorm:"column:status;not null;default:'pending'"`
	PaymentMethod *enums.PaymentMethod `gorm:"column:payment_method"`
	WalletApplied decimal.Decimal      `gorm:"column:wallet_applied;type:numeric(12,2);not null;default:0"`
	PaidAt        *time.Time           `gorm:"column:paid_at"`

	Items []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem is the add-time snapshot of one cart line within an order.
type OrderLineItem struct {
	ID        uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID         `gorm:"column:order_id;type:uuid;not null;index"`
	LineID    string            `gorm:"column:line_id;not null"`
	ProductID uuid.UUID         `gorm:"column:product_id;type:uuid;not null"`
	Name      string            `gorm:"column:name;not null"`
	SKU       *string           `gorm:"column:sku"`
	Kind      enums.ProductKind `gorm:"column:kind;not null"`
	UnitPrice decimal.Decimal   `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Quantity  int               `gorm:"column:quantity;not null"`
	LineTotal decimal.Decimal   `gorm:"column:line_total;type:numeric(12,2);not null"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
}
