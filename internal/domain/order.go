package domain

import "time"

// PaymentMethod é o meio de pagamento escolhido no checkout.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentUPI  PaymentMethod = "upi"
	PaymentCOD  PaymentMethod = "cod"
)

// CheckoutForm é o payload do checkout simulado.
type CheckoutForm struct {
	FirstName     string        `json:"firstName" validate:"required"`
	LastName      string        `json:"lastName" validate:"required"`
	Email         string        `json:"email" validate:"required,email"`
	Phone         string        `json:"phone" validate:"required,number,len=10"`
	Address       string        `json:"address" validate:"required"`
	City          string        `json:"city" validate:"required"`
	State         string        `json:"state" validate:"required"`
	Pincode       string        `json:"pincode" validate:"required,number,min=5,max=6"`
	PaymentMethod PaymentMethod `json:"paymentMethod" validate:"required,oneof=card upi cod"`
}

// Customer são os dados de entrega registrados no pedido.
type Customer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	Pincode   string `json:"pincode"`
}

// OrderStatus é o estado do pedido simulado.
type OrderStatus string

const OrderConfirmed OrderStatus = "confirmed"

// Order é o pedido confirmado. Nunca é persistido.
type Order struct {
	ID            string        `json:"id"` // "SZ" + últimos 8 dígitos do epoch em ms
	Reference     string        `json:"reference"`
	Items         []CartItem    `json:"items"`
	PromoCode     Selector      `json:"promoCode"`
	Totals        CartTotals    `json:"totals"`
	Display       DisplayTotals `json:"display"`
	Customer      Customer      `json:"customer"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        OrderStatus   `json:"status"`
	PlacedAt      time.Time     `json:"placedAt"`
}

// Session é a sessão anônima do comprador.
type Session struct {
	Token     string    `json:"token"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}
