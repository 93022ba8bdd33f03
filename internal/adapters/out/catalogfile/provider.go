// Package catalogfile reads the menu from a YAML or JSON file on disk.
package catalogfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"kitchenpos/internal/core/domain/model/catalog"
	"kitchenpos/internal/pkg/errs"

	"gopkg.in/yaml.v3"
)

const resource = "menu"

// Provider implements ports.CatalogProvider. The file is read on every call so
// menu edits are picked up without a restart.
type Provider struct {
	path   string
	logger *slog.Logger
}

func NewProvider(path string, logger *slog.Logger) *Provider {
	return &Provider{
		path:   path,
		logger: logger.With("component", "catalog_file"),
	}
}

// GetMenu parses the menu file. A missing file yields an empty menu.
func (p *Provider) GetMenu(ctx context.Context) (catalog.Menu, error) {
	if err := ctx.Err(); err != nil {
		return catalog.Menu{}, err
	}

	raw, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.WarnContext(ctx, "Menu file not found, serving an empty menu", "path", p.path)
		return catalog.Menu{Products: []catalog.Product{}}, nil
	}
	if err != nil {
		return catalog.Menu{}, errs.NewStorageError(resource, err)
	}

	// JSON documents are valid YAML, so one decoder serves both formats.
	var menu catalog.Menu
	if err = yaml.Unmarshal(raw, &menu); err != nil {
		return catalog.Menu{}, errs.NewStorageError(resource, fmt.Errorf("parse %s: %w", p.path, err))
	}
	if menu.Products == nil {
		menu.Products = []catalog.Product{}
	}

	return menu, nil
}
