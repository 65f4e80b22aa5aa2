package domain

import "github.com/shopspring/decimal"

type Client struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Email     string `db:"email" json:"email"`
	CPF       string `db:"cpf" json:"cpf"`
	CreatedBy int64  `db:"created_by" json:"created_by"`
	CreatedAt string `db:"created_at" json:"created_at"`
	UpdatedAt string `db:"updated_at" json:"updated_at"`
}

type Product struct {
	ID           int64           `db:"id" json:"id"`
	Description  string          `db:"description" json:"description"`
	Category     string          `db:"category" json:"category,omitempty"`
	Section      string          `db:"section" json:"section,omitempty"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Barcode      string          `db:"barcode" json:"barcode,omitempty"`
	InitialStock int             `db:"initial_stock" json:"initial_stock"`
	CurrentStock int             `db:"current_stock" json:"current_stock"`
	ExpiringDate string          `db:"expiring_date" json:"expiring_date,omitempty"`
	CreatedAt    string          `db:"created_at" json:"created_at"`
	UpdatedAt    string          `db:"updated_at" json:"updated_at"`
	Images       []ProductImage  `db:"-" json:"images"`
}

type ProductImage struct {
	ID        int64  `db:"id" json:"id"`
	ProductID int64  `db:"product_id" json:"product_id"`
	URL       string `db:"url" json:"url"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Order status values. Transitions between them are unrestricted; the
// set itself is closed so typos never reach the database.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusShipped   = "SHIPPED"
	StatusDelivered = "DELIVERED"
	StatusCanceled  = "CANCELED"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	}
	return false
}

type Order struct {
	ID        int64       `db:"id" json:"id"`
	Status    string      `db:"status" json:"status"`
	ClientID  *int64      `db:"client_id" json:"client_id,omitempty"`
	UserID    *int64      `db:"user_id" json:"user_id,omitempty"`
	CreatedAt string      `db:"created_at" json:"created_at"`
	UpdatedAt string      `db:"updated_at" json:"updated_at"`
	Items     []OrderItem `db:"-" json:"items"`
}

type OrderItem struct {
	ID        int64           `db:"id" json:"id"`
	OrderID   int64           `db:"order_id" json:"order_id"`
	ProductID int64           `db:"product_id" json:"product_id"`
	Quantity  int             `db:"quantity" json:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price" json:"unit_price"`
	CreatedAt string          `db:"created_at" json:"created_at"`
	UpdatedAt string          `db:"updated_at" json:"updated_at"`
}
