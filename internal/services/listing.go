package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/imobi/client/internal/api"
	"github.com/imobi/client/types"
)

// ListingAPI is the part of the API client listing pages need.
type ListingAPI interface {
	ListImoveis(ctx context.Context, finalidade types.Finalidade) ([]types.Imovel, error)
	GetImovel(ctx context.Context, id int) (types.Imovel, error)
	CreateImovel(ctx context.Context, imovel types.Imovel) (*types.Imovel, error)
	UpdateImovel(ctx context.Context, id int, imovel types.Imovel) error
	DeleteImovel(ctx context.Context, id int) error
	ListBairros(ctx context.Context) ([]types.Bairro, error)
	ListTiposImoveis(ctx context.Context) ([]types.TipoImovel, error)
}

// TokenChecker reports whether a session token exists.
type TokenChecker interface {
	Token(ctx context.Context) (string, bool)
}

// ListingService encapsulates listing use-cases.
type ListingService struct {
	api    ListingAPI
	tokens TokenChecker
}

func NewListingService(api ListingAPI, tokens TokenChecker) *ListingService {
	return &ListingService{api: api, tokens: tokens}
}

// List returns listings, optionally filtered by purpose. An empty or
// unknown purpose lists everything.
func (s *ListingService) List(ctx context.Context, finalidade string) ([]types.Imovel, error) {
	purpose := types.Finalidade(strings.ToUpper(strings.TrimSpace(finalidade)))
	if !purpose.Valid() {
		purpose = ""
	}
	return s.api.ListImoveis(ctx, purpose)
}

// Get fetches a listing by its textual id.
func (s *ListingService) Get(ctx context.Context, rawID string) (types.Imovel, error) {
	id, err := ParseID(rawID)
	if err != nil {
		return types.Imovel{}, err
	}
	imovel, err := s.api.GetImovel(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return types.Imovel{}, fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return types.Imovel{}, err
	}
	return imovel, nil
}

// Create validates the form and creates the listing. The returned
// listing is nil when the API does not echo it back.
func (s *ListingService) Create(ctx context.Context, form ListingForm) (*types.Imovel, error) {
	if err := s.requireSession(ctx); err != nil {
		return nil, err
	}
	imovel, err := ParseListingForm(form)
	if err != nil {
		return nil, err
	}
	return s.api.CreateImovel(ctx, imovel)
}

// Update validates the form and replaces the listing.
func (s *ListingService) Update(ctx context.Context, rawID string, form ListingForm) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	imovel, err := ParseListingForm(form)
	if err != nil {
		return err
	}
	imovel.ID = id
	if err := s.api.UpdateImovel(ctx, id, imovel); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// Delete removes a listing.
func (s *ListingService) Delete(ctx context.Context, rawID string) error {
	id, err := ParseID(rawID)
	if err != nil {
		return err
	}
	if err := s.requireSession(ctx); err != nil {
		return err
	}
	if err := s.api.DeleteImovel(ctx, id); err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("%w: %d", ErrNotFound, id)
		}
		return err
	}
	return nil
}

// FormOptions holds the reference lists of the listing form. Each list
// loads on its own; a failure in one leaves the other usable.
type FormOptions struct {
	Bairros    []types.Bairro
	Tipos      []types.TipoImovel
	BairrosErr error
	TiposErr   error
}

// FormOptions fetches neighborhoods and property types independently.
func (s *ListingService) FormOptions(ctx context.Context) FormOptions {
	var (
		opts FormOptions
		wg   sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		opts.Bairros, opts.BairrosErr = s.api.ListBairros(ctx)
	}()
	go func() {
		defer wg.Done()
		opts.Tipos, opts.TiposErr = s.api.ListTiposImoveis(ctx)
	}()
	wg.Wait()
	return opts
}

func (s *ListingService) requireSession(ctx context.Context) error {
	if s.tokens == nil {
		return ErrNotAuthenticated
	}
	if _, ok := s.tokens.Token(ctx); !ok {
		return ErrNotAuthenticated
	}
	return nil
}

// ParseID parses a positive listing id.
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
