package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/imobi/client/types"
)

// ListImoveis returns the public listings, optionally filtered by purpose.
func (c *Client) ListImoveis(ctx context.Context, finalidade types.Finalidade) ([]types.Imovel, error) {
	var query url.Values
	if finalidade != "" {
		query = url.Values{"finalidade": {string(finalidade)}}
	}

	items := []types.Imovel{}
	if err := c.Do(ctx, Request{Path: "/imoveis", Query: query}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetImovel fetches a single listing. A missing listing matches ErrNotFound.
func (c *Client) GetImovel(ctx context.Context, id int) (types.Imovel, error) {
	raw, err := c.Raw(ctx, Request{Path: imovelPath(id)})
	if err != nil {
		return types.Imovel{}, err
	}
	if raw == nil {
		return types.Imovel{}, fmt.Errorf("%w: empty listing %d", ErrContractViolation, id)
	}
	var imovel types.Imovel
	if err := decode(raw, &imovel); err != nil {
		return types.Imovel{}, err
	}
	return imovel, nil
}

// CreateImovel creates a listing. The API may answer 201 with no body,
// in which case the returned listing is nil.
func (c *Client) CreateImovel(ctx context.Context, imovel types.Imovel) (*types.Imovel, error) {
	raw, err := c.Raw(ctx, Request{
		Method: http.MethodPost,
		Path:   "/imoveis",
		Body:   imovel,
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var created types.Imovel
	if err := decode(raw, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateImovel replaces a listing. Any response body is ignored.
func (c *Client) UpdateImovel(ctx context.Context, id int, imovel types.Imovel) error {
	return c.Do(ctx, Request{
		Method: http.MethodPut,
		Path:   imovelPath(id),
		Body:   imovel,
		Auth:   true,
	}, nil)
}

// DeleteImovel removes a listing.
func (c *Client) DeleteImovel(ctx context.Context, id int) error {
	return c.Do(ctx, Request{
		Method: http.MethodDelete,
		Path:   imovelPath(id),
		Auth:   true,
	}, nil)
}

func imovelPath(id int) string {
	return "/imoveis/" + strconv.Itoa(id)
}

func decode(raw []byte, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
