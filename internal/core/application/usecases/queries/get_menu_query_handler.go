package queries

import (
	"context"

	"kitchenpos/internal/core/domain/model/catalog"
	"kitchenpos/internal/core/ports"
)

type GetMenuQueryHandler struct {
	catalog ports.CatalogProvider
}

func NewGetMenuQueryHandler(catalog ports.CatalogProvider) GetMenuQueryHandler {
	return GetMenuQueryHandler{catalog: catalog}
}

func (h GetMenuQueryHandler) Handle(ctx context.Context, query GetMenuQuery) (catalog.Menu, error) {
	if err := query.Validate(); err != nil {
		return catalog.Menu{}, err
	}

	return h.catalog.GetMenu(ctx)
}
