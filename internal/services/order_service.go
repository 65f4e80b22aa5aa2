package services

import (
	"database/sql"
	"errors"

	"atelier/internal/apperr"
	"atelier/internal/domain"
	"atelier/internal/repos"
)

type OrderService struct {
	Orders  *repos.OrderRepo
	Clients *repos.ClientRepo
}

func NewOrderService(orders *repos.OrderRepo, clients *repos.ClientRepo) *OrderService {
	return &OrderService{Orders: orders, Clients: clients}
}

// OrderInput is a new order request. Items are created atomically with
// the order header.
type OrderInput struct {
	Status   string           `json:"status"`
	ClientID *int64           `json:"client_id"`
	Items    []OrderItemInput `json:"items"`
}

type OrderItemInput struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// Create places an order for the calling user. Every referenced product
// must exist and have stock; otherwise nothing persists.
func (s *OrderService) Create(in OrderInput, userID int64) (*domain.Order, error) {
	if len(in.Items) == 0 {
		return nil, apperr.Validationf("order must contain at least one item")
	}
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !domain.ValidStatus(status) {
		return nil, apperr.Validationf("unknown order status %q", status)
	}

	items := make([]repos.NewItem, 0, len(in.Items))
	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, apperr.Validationf("item quantity must be greater than zero")
		}
		items = append(items, repos.NewItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	if in.ClientID != nil {
		if _, err := s.Clients.Get(*in.ClientID); err == sql.ErrNoRows {
			return nil, apperr.Validationf("client %d not found", *in.ClientID)
		} else if err != nil {
			return nil, err
		}
	}

	o, err := s.Orders.CreateWithItems(status, in.ClientID, &userID, items)
	switch {
	case errors.Is(err, repos.ErrProductMissing):
		return nil, apperr.Validationf("%s", err.Error())
	case errors.Is(err, repos.ErrInsufficientStock):
		return nil, apperr.Validationf("%s", err.Error())
	}
	return o, err
}

func (s *OrderService) Get(id int64) (*domain.Order, error) {
	o, err := s.Orders.Get(id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("order not found")
	}
	return o, err
}

func (s *OrderService) List(page, size int) ([]domain.Order, int, error) {
	return s.Orders.List(size, (page-1)*size)
}

// UpdateStatus is the only mutation an existing order accepts.
func (s *OrderService) UpdateStatus(id int64, status string) (*domain.Order, error) {
	if !domain.ValidStatus(status) {
		return nil, apperr.Validationf("unknown order status %q", status)
	}
	o, err := s.Orders.UpdateStatus(id, status)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("order not found")
	}
	return o, err
}

func (s *OrderService) Delete(id int64) error {
	ok, err := s.Orders.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFoundf("order not found")
	}
	return nil
}
