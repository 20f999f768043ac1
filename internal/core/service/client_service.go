package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ventascrm/sales-api/internal/core/domain"
	"github.com/ventascrm/sales-api/internal/core/ports"
)

type ClientService struct {
	repo ports.ClientRepository
	log  zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, log zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, log: log}
}

// Create registers a client owned by owner. E-mails are unique across all
// sellers, not only within owner's clients.
func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput, owner *domain.Identity) (*domain.Client, error) {
	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	input.Email = normalizeEmail(input.Email)
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, input.Email, ""); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.Client{
		Name:      input.Name,
		Surname:   input.Surname,
		Company:   input.Company,
		Email:     input.Email,
		Phone:     input.Phone,
		SellerID:  owner.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrClientExists) {
			return nil, err
		}
		s.log.Error().Err(err).Str("seller_id", owner.ID).Msg("failed to create client")
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.log.Info().Str("client_id", created.ID).Str("seller_id", owner.ID).Msg("client created")
	return created, nil
}

func (s *ClientService) Get(ctx context.Context, id string, owner *domain.Identity) (*domain.Client, error) {
	return s.owned(ctx, id, owner)
}

// List returns every client regardless of owner.
func (s *ClientService) List(ctx context.Context, identity *domain.Identity) ([]*domain.Client, error) {
	if err := requireAuthenticated(identity); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, "")
}

func (s *ClientService) ListBySeller(ctx context.Context, owner *domain.Identity) ([]*domain.Client, error) {
	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, owner.ID)
}

func (s *ClientService) Update(ctx context.Context, id string, input ports.UpdateClientInput, owner *domain.Identity) (*domain.Client, error) {
	if _, err := s.owned(ctx, id, owner); err != nil {
		return nil, err
	}
	if input.Email != nil {
		email := normalizeEmail(*input.Email)
		input.Email = &email
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.Email != nil {
		if err := s.ensureEmailFree(ctx, *input.Email, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, domain.ClientPatch{
		Name:    input.Name,
		Surname: input.Surname,
		Company: input.Company,
		Email:   input.Email,
		Phone:   input.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return updated, nil
}

func (s *ClientService) Delete(ctx context.Context, id string, owner *domain.Identity) error {
	if _, err := s.owned(ctx, id, owner); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	s.log.Info().Str("client_id", id).Str("seller_id", owner.ID).Msg("client deleted")
	return nil
}

func (s *ClientService) Lookup(ctx context.Context, id string) (*domain.Client, error) {
	return s.repo.FindByID(ctx, id)
}

// owned loads the client and checks it belongs to owner. A missing client
// is reported before an ownership mismatch.
func (s *ClientService) owned(ctx context.Context, id string, owner *domain.Identity) (*domain.Client, error) {
	if err := requireAuthenticated(owner); err != nil {
		return nil, err
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := RequireOwnership(c.SellerID, owner); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ClientService) ensureEmailFree(ctx context.Context, email, selfID string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.ID != selfID:
		return domain.ErrClientExists
	case err == nil, errors.Is(err, domain.ErrClientNotFound):
		return nil
	default:
		return fmt.Errorf("check client email: %w", err)
	}
}
