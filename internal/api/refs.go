package api

import (
	"context"

	"github.com/imobi/client/types"
)

// ListBairros returns the neighborhoods used to fill listing forms.
func (c *Client) ListBairros(ctx context.Context) ([]types.Bairro, error) {
	items := []types.Bairro{}
	if err := c.Do(ctx, Request{Path: "/bairros"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ListTiposImoveis returns the property types used to fill listing forms.
func (c *Client) ListTiposImoveis(ctx context.Context) ([]types.TipoImovel, error) {
	items := []types.TipoImovel{}
	if err := c.Do(ctx, Request{Path: "/tiposImoveis"}, &items); err != nil {
		return nil, err
	}
	return items, nil
}
