package repos

import (
	"atelier/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ClientRepo struct{ db *sqlx.DB }

func NewClientRepo(db *sqlx.DB) *ClientRepo { return &ClientRepo{db: db} }

const clientCols = `id, name, email, cpf, created_by, created_at, updated_at`

func (r *ClientRepo) Get(id int64) (*domain.Client, error) {
	var c domain.Client
	err := r.db.Get(&c, `SELECT `+clientCols+` FROM clients WHERE id=?`, id)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns one page ordered by id plus the total row count.
func (r *ClientRepo) List(limit, offset int) ([]domain.Client, int, error) {
	var total int
	if err := r.db.Get(&total, `SELECT COUNT(*) FROM clients`); err != nil {
		return nil, 0, err
	}
	out := []domain.Client{}
	err := r.db.Select(&out, `
		SELECT `+clientCols+` FROM clients
		ORDER BY id
		LIMIT ? OFFSET ?
	`, limit, offset)
	return out, total, err
}

// EmailTaken reports whether another client (excluding excludeID, 0 for
// none) already uses the email.
func (r *ClientRepo) EmailTaken(email string, excludeID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM clients WHERE LOWER(email)=LOWER(?) AND id<>?`, email, excludeID)
	return n > 0, err
}

func (r *ClientRepo) CPFTaken(cpf string, excludeID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM clients WHERE cpf=? AND id<>?`, cpf, excludeID)
	return n > 0, err
}

func (r *ClientRepo) Create(name, email, cpf string, createdBy int64) (*domain.Client, error) {
	res, err := r.db.Exec(`
		INSERT INTO clients(name, email, cpf, created_by)
		VALUES(?, ?, ?, ?)
	`, name, email, cpf, createdBy)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.Get(id)
}

func (r *ClientRepo) Update(c *domain.Client) (*domain.Client, error) {
	_, err := r.db.Exec(`
		UPDATE clients
		SET name=?, email=?, cpf=?, updated_at=CURRENT_TIMESTAMP
		WHERE id=?
	`, c.Name, c.Email, c.CPF, c.ID)
	if err != nil {
		return nil, err
	}
	return r.Get(c.ID)
}

// Delete removes the client; orders referencing it keep their rows with
// client_id nulled by the FK rule.
func (r *ClientRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM clients WHERE id=?`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
