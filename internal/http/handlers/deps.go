package handlers

import (
	"atelier/internal/config"
	"atelier/internal/repos"
	"atelier/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler    *AuthHandler
	ClientHandler  *ClientHandler
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	Auth           *services.AuthService
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	userRepo := repos.NewUserRepo(db)
	clientRepo := repos.NewClientRepo(db)
	productRepo := repos.NewProductRepo(db)
	orderRepo := repos.NewOrderRepo(db)

	authSvc := &services.AuthService{
		Users:      userRepo,
		Secret:     []byte(cfg.JWTSecret),
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}
	clientSvc := services.NewClientService(clientRepo)
	productSvc := services.NewProductService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, clientRepo)

	return &Deps{
		AuthHandler:    &AuthHandler{Auth: authSvc},
		ClientHandler:  &ClientHandler{Clients: clientSvc, PageSizeMax: cfg.PageSizeMax},
		ProductHandler: &ProductHandler{Products: productSvc, PageSizeMax: cfg.PageSizeMax},
		OrderHandler:   &OrderHandler{Orders: orderSvc, PageSizeMax: cfg.PageSizeMax},
		Auth:           authSvc,
	}
}
