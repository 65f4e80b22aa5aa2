package repos

import (
	"atelier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `
	id, description, COALESCE(category,'') AS category, COALESCE(section,'') AS section,
	price, COALESCE(barcode,'') AS barcode, initial_stock, current_stock,
	COALESCE(expiring_date,'') AS expiring_date, created_at, updated_at`

func (r *ProductRepo) Get(id int64) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id=?`, id); err != nil {
		return nil, err
	}
	images, err := r.Images(id)
	if err != nil {
		return nil, err
	}
	p.Images = images
	return &p, nil
}

func (r *ProductRepo) List(limit, offset int) ([]domain.Product, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM products`); err != nil {
		return nil, 0, err
	}
	out := []domain.Product{}
	if err := r.db.Select(&out, `
		SELECT `+productCols+` FROM products
		ORDER BY id
		LIMIT ? OFFSET ?
	`, limit, offset); err != nil {
		return nil, 0, err
	}
	for i := range out {
		images, err := r.Images(out[i].ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Images = images
	}
	return out, total, nil
}

func (r *ProductRepo) BarcodeTaken(barcode string, excludeID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE barcode=? AND id<>?`, barcode, excludeID)
	return n > 0, err
}

func (r *ProductRepo) Create(p *domain.Product) (*domain.Product, error) {
	res, err := r.db.Exec(`
		INSERT INTO products(description, category, section, price, barcode,
		                     initial_stock, current_stock, expiring_date)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, p.Description, nullable(p.Category), nullable(p.Section), p.Price,
		nullable(p.Barcode), p.InitialStock, p.CurrentStock, nullable(p.ExpiringDate))
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r *ProductRepo) Update(p *domain.Product) (*domain.Product, error) {
	_, err := r.db.Exec(`
		UPDATE products
		SET description=?, category=?, section=?, price=?, barcode=?,
		    initial_stock=?, current_stock=?, expiring_date=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, p.Description, nullable(p.Category), nullable(p.Section), p.Price,
		nullable(p.Barcode), p.InitialStock, p.CurrentStock, nullable(p.ExpiringDate), p.ID)
	if err != nil {
		return nil, err
	}
	return r.Get(p.ID)
}

// Delete removes the product; its images go with it via the FK cascade.
func (r *ProductRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM products WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ---------- Images ----------

func (r *ProductRepo) Images(productID int64) ([]domain.ProductImage, error) {
	out := []domain.ProductImage{}
	err := r.db.Select(&out, `
		SELECT id, product_id, url, created_at
		FROM product_images
		WHERE product_id=?
		ORDER BY id
	`, productID)
	return out, err
}

// AddImage inserts one image URL. A URL the product already carries is
// skipped and reported as (nil, nil).
func (r *ProductRepo) AddImage(productID int64, url string) (*domain.ProductImage, error) {
	var n int
	if err := r.db.Get(&n, `SELECT COUNT(*) FROM product_images WHERE product_id=? AND url=?`, productID, url); err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, nil
	}
	res, err := r.db.Exec(`INSERT INTO product_images(product_id, url) VALUES(?, ?)`, productID, url)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var img domain.ProductImage
	if err := r.db.Get(&img, `SELECT id, product_id, url, created_at FROM product_images WHERE id=?`, id); err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ProductRepo) DeleteImage(imageID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM product_images WHERE id=?`, imageID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// Exists is a cheap presence probe used before image operations.
func (r *ProductRepo) Exists(id int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE id=?`, id)
	return n > 0, err
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
