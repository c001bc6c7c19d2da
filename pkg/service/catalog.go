package service

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/pkg/errors"

	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
)

// FileCatalog reads the product file on every call.
type FileCatalog struct {
	filePath string
}

type CatalogSummary struct {
	Products   int
	Duplicates []string
	Unpriced   []string
	Categories []string
}

func NewFileCatalog(jsonPath string) *FileCatalog {
	return &FileCatalog{filePath: jsonPath}
}

func (c *FileCatalog) Path() string {
	return c.filePath
}

// Raw returns the catalog document as stored on disk.
func (c *FileCatalog) Raw() ([]byte, error) {
	fileBytes, err := os.ReadFile(c.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(model.ErrCatalogNotFound, "file %s", c.filePath)
		}
		return nil, errors.Wrapf(model.ErrCatalogRead, "error reading file %s: %v", c.filePath, err)
	}

	if !json.Valid(fileBytes) {
		return nil, errors.Wrapf(model.ErrCatalogRead, "file %s is not valid JSON", c.filePath)
	}

	return fileBytes, nil
}

func (c *FileCatalog) Products() ([]model.Product, error) {
	fileBytes, err := c.Raw()
	if err != nil {
		return nil, err
	}

	var data model.Catalog
	if err := json.Unmarshal(fileBytes, &data); err != nil {
		return nil, errors.Wrapf(model.ErrCatalogRead, "error JSON parsing %s: %v", c.filePath, err)
	}

	return data.Products, nil
}

func (c *FileCatalog) Summary() (CatalogSummary, error) {
	products, err := c.Products()
	if err != nil {
		return CatalogSummary{}, err
	}

	summary := CatalogSummary{Products: len(products)}
	seen := make(map[string]int, len(products))
	categories := make(map[string]struct{})
	for _, p := range products {
		seen[p.ID]++
		if seen[p.ID] == 2 {
			summary.Duplicates = append(summary.Duplicates, p.ID)
		}
		if p.Price <= 0 {
			summary.Unpriced = append(summary.Unpriced, p.ID)
		}
		if p.Category != "" {
			categories[p.Category] = struct{}{}
		}
	}
	for category := range categories {
		summary.Categories = append(summary.Categories, category)
	}
	sort.Strings(summary.Categories)

	return summary, nil
}
