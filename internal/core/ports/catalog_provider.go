package ports

import (
	"context"

	"kitchenpos/internal/core/domain/model/catalog"
)

// CatalogProvider supplies the current menu.
type CatalogProvider interface {
	GetMenu(ctx context.Context) (catalog.Menu, error)
}
