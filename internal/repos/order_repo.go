package repos

import (
	"database/sql"
	"errors"
	"fmt"

	"atelier/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// Raised from CreateWithItems; the service layer maps these onto the
// API error taxonomy.
var (
	ErrProductMissing    = errors.New("order references a missing product")
	ErrInsufficientStock = errors.New("insufficient stock")
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, status, client_id, user_id, created_at, updated_at`
const itemCols = `id, order_id, product_id, quantity, unit_price, created_at, updated_at`

// NewItem is one requested line of a new order.
type NewItem struct {
	ProductID int64
	Quantity  int
}

// CreateWithItems inserts the order and all items in one transaction.
// Each line snapshots the product's current price and decrements its
// stock. Any missing product or stock shortfall rolls the whole order
// back; nothing persists.
func (r *OrderRepo) CreateWithItems(status string, clientID, userID *int64, items []NewItem) (*domain.Order, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO orders(status, client_id, user_id) VALUES(?, ?, ?)`,
		status, clientID, userID)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	for _, it := range items {
		var prod struct {
			Price decimal.Decimal `db:"price"`
			Stock int             `db:"current_stock"`
		}
		err := tx.Get(&prod, `SELECT price, current_stock FROM products WHERE id=?`, it.ProductID)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product %d: %w", it.ProductID, ErrProductMissing)
		}
		if err != nil {
			return nil, err
		}
		if prod.Stock < it.Quantity {
			return nil, fmt.Errorf("product %d (requested %d, available %d): %w",
				it.ProductID, it.Quantity, prod.Stock, ErrInsufficientStock)
		}
		if _, err := tx.Exec(`
			INSERT INTO order_items(order_id, product_id, quantity, unit_price)
			VALUES(?, ?, ?, ?)
		`, orderID, it.ProductID, it.Quantity, prod.Price); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(`
			UPDATE products
			SET current_stock = current_stock - ?, updated_at=CURRENT_TIMESTAMP
			WHERE id=?
		`, it.Quantity, it.ProductID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return r.Get(orderID)
}

func (r *OrderRepo) Get(id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.Get(&o, `SELECT `+orderCols+` FROM orders WHERE id=?`, id); err != nil {
		return nil, err
	}
	items, err := r.items(o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *OrderRepo) List(limit, offset int) ([]domain.Order, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM orders`); err != nil {
		return nil, 0, err
	}
	out := []domain.Order{}
	if err := r.db.Select(&out, `
		SELECT `+orderCols+` FROM orders
		ORDER BY id
		LIMIT ? OFFSET ?
	`, limit, offset); err != nil {
		return nil, 0, err
	}
	for i := range out {
		items, err := r.items(out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Items = items
	}
	return out, total, nil
}

func (r *OrderRepo) UpdateStatus(id int64, status string) (*domain.Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=?`, status, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, err
	} else if n == 0 {
		return nil, sql.ErrNoRows
	}
	return r.Get(id)
}

// Delete removes the order; items go with it via the FK cascade. Stock
// consumed by the order is not restored.
func (r *OrderRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM orders WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (r *OrderRepo) items(orderID int64) ([]domain.OrderItem, error) {
	out := []domain.OrderItem{}
	err := r.db.Select(&out, `
		SELECT `+itemCols+` FROM order_items
		WHERE order_id=?
		ORDER BY id
	`, orderID)
	return out, err
}
