package services

import (
	"database/sql"

	"atelier/internal/apperr"
	"atelier/internal/domain"
	"atelier/internal/repos"

	"github.com/shopspring/decimal"
)

type ProductService struct {
	Products *repos.ProductRepo
}

func NewProductService(products *repos.ProductRepo) *ProductService {
	return &ProductService{Products: products}
}

// ProductInput carries a full product payload on create.
type ProductInput struct {
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Section      string          `json:"section"`
	Price        decimal.Decimal `json:"price"`
	Barcode      string          `json:"barcode"`
	InitialStock int             `json:"initial_stock"`
	CurrentStock int             `json:"current_stock"`
	ExpiringDate string          `json:"expiring_date"`
}

// ProductPatch holds a partial update; nil fields are left untouched.
type ProductPatch struct {
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Section      *string          `json:"section"`
	Price        *decimal.Decimal `json:"price"`
	Barcode      *string          `json:"barcode"`
	InitialStock *int             `json:"initial_stock"`
	CurrentStock *int             `json:"current_stock"`
	ExpiringDate *string          `json:"expiring_date"`
}

func (s *ProductService) Create(in ProductInput) (*domain.Product, error) {
	if in.Description == "" {
		return nil, apperr.Validationf("description is required")
	}
	if in.Price.IsNegative() {
		return nil, apperr.Validationf("price must not be negative")
	}
	if in.InitialStock < 0 || in.CurrentStock < 0 {
		return nil, apperr.Validationf("stock must not be negative")
	}
	if in.Barcode != "" {
		if taken, err := s.Products.BarcodeTaken(in.Barcode, 0); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflictf("barcode already registered")
		}
	}
	p := &domain.Product{
		Description:  in.Description,
		Category:     in.Category,
		Section:      in.Section,
		Price:        in.Price.Round(2),
		Barcode:      in.Barcode,
		InitialStock: in.InitialStock,
		CurrentStock: in.CurrentStock,
		ExpiringDate: in.ExpiringDate,
	}
	return s.Products.Create(p)
}

func (s *ProductService) Get(id int64) (*domain.Product, error) {
	p, err := s.Products.Get(id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("product not found")
	}
	return p, err
}

func (s *ProductService) List(page, size int) ([]domain.Product, int, error) {
	return s.Products.List(size, (page-1)*size)
}

func (s *ProductService) Update(id int64, patch ProductPatch) (*domain.Product, error) {
	p, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return nil, apperr.Validationf("description must not be empty")
		}
		p.Description = *patch.Description
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Section != nil {
		p.Section = *patch.Section
	}
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, apperr.Validationf("price must not be negative")
		}
		p.Price = patch.Price.Round(2)
	}
	if patch.Barcode != nil && *patch.Barcode != p.Barcode {
		if *patch.Barcode != "" {
			if taken, err := s.Products.BarcodeTaken(*patch.Barcode, id); err != nil {
				return nil, err
			} else if taken {
				return nil, apperr.Conflictf("barcode already registered by another product")
			}
		}
		p.Barcode = *patch.Barcode
	}
	if patch.InitialStock != nil {
		if *patch.InitialStock < 0 {
			return nil, apperr.Validationf("stock must not be negative")
		}
		p.InitialStock = *patch.InitialStock
	}
	if patch.CurrentStock != nil {
		if *patch.CurrentStock < 0 {
			return nil, apperr.Validationf("stock must not be negative")
		}
		p.CurrentStock = *patch.CurrentStock
	}
	if patch.ExpiringDate != nil {
		p.ExpiringDate = *patch.ExpiringDate
	}
	return s.Products.Update(p)
}

func (s *ProductService) Delete(id int64) error {
	ok, err := s.Products.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFoundf("product not found")
	}
	return nil
}

// ---------- Images ----------

// AddImages attaches image URLs to a product. URLs the product already
// has are skipped; the returned slice holds only newly created rows.
func (s *ProductService) AddImages(productID int64, urls []string) ([]domain.ProductImage, error) {
	if ok, err := s.Products.Exists(productID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperr.NotFoundf("product not found")
	}
	created := []domain.ProductImage{}
	for _, u := range urls {
		img, err := s.Products.AddImage(productID, u)
		if err != nil {
			return nil, err
		}
		if img != nil {
			created = append(created, *img)
		}
	}
	return created, nil
}

func (s *ProductService) ListImages(productID int64) ([]domain.ProductImage, error) {
	if ok, err := s.Products.Exists(productID); err != nil {
		return nil, err
	} else if !ok {
		return nil, apperr.NotFoundf("product not found")
	}
	return s.Products.Images(productID)
}

func (s *ProductService) DeleteImage(imageID int64) error {
	ok, err := s.Products.DeleteImage(imageID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFoundf("image not found")
	}
	return nil
}
