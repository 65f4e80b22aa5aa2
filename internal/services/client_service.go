package services

import (
	"database/sql"

	"atelier/internal/apperr"
	"atelier/internal/domain"
	"atelier/internal/repos"
)

type ClientService struct {
	Clients *repos.ClientRepo
}

func NewClientService(clients *repos.ClientRepo) *ClientService {
	return &ClientService{Clients: clients}
}

// ClientPatch holds a partial update; nil fields are left untouched.
type ClientPatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	CPF   *string `json:"cpf"`
}

func (s *ClientService) Create(name, email, cpf string, createdBy int64) (*domain.Client, error) {
	if taken, err := s.Clients.EmailTaken(email, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflictf("email already registered")
	}
	if taken, err := s.Clients.CPFTaken(cpf, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, apperr.Conflictf("cpf already registered")
	}
	return s.Clients.Create(name, email, cpf, createdBy)
}

func (s *ClientService) Get(id int64) (*domain.Client, error) {
	c, err := s.Clients.Get(id)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFoundf("client not found")
	}
	return c, err
}

func (s *ClientService) List(page, size int) ([]domain.Client, int, error) {
	return s.Clients.List(size, (page-1)*size)
}

func (s *ClientService) Update(id int64, patch ClientPatch) (*domain.Client, error) {
	c, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.Email != nil && *patch.Email != c.Email {
		if taken, err := s.Clients.EmailTaken(*patch.Email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflictf("email already registered by another client")
		}
		c.Email = *patch.Email
	}
	if patch.CPF != nil && *patch.CPF != c.CPF {
		if taken, err := s.Clients.CPFTaken(*patch.CPF, id); err != nil {
			return nil, err
		} else if taken {
			return nil, apperr.Conflictf("cpf already registered by another client")
		}
		c.CPF = *patch.CPF
	}
	return s.Clients.Update(c)
}

func (s *ClientService) Delete(id int64) error {
	ok, err := s.Clients.Delete(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFoundf("client not found")
	}
	return nil
}
