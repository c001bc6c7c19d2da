package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
)

const testCatalog = `{
  "products": [
    {"id": "p1", "title": "Camiseta", "price": 50, "stock": 3, "category": "Roupas"},
    {"id": "p2", "title": "Caneca", "price": 39.9, "category": "Casa", "extra": true},
    {"id": "p1", "title": "Camiseta nova", "price": 55, "category": "Roupas"},
    {"id": "gift", "title": "Brinde"}
  ]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileCatalog_Raw(t *testing.T) {
	t.Run("returns the document verbatim", func(t *testing.T) {
		catalog := NewFileCatalog(writeCatalog(t, testCatalog))

		data, err := catalog.Raw()

		require.NoError(t, err)
		assert.Equal(t, testCatalog, string(data))
	})

	t.Run("missing file", func(t *testing.T) {
		catalog := NewFileCatalog(filepath.Join(t.TempDir(), "absent.json"))

		_, err := catalog.Raw()

		assert.ErrorIs(t, err, model.ErrCatalogNotFound)
		assert.NotErrorIs(t, err, model.ErrCatalogRead)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		catalog := NewFileCatalog(writeCatalog(t, `{"products": [`))

		_, err := catalog.Raw()

		assert.ErrorIs(t, err, model.ErrCatalogRead)
	})

	t.Run("path is a directory", func(t *testing.T) {
		catalog := NewFileCatalog(t.TempDir())

		_, err := catalog.Raw()

		assert.ErrorIs(t, err, model.ErrCatalogRead)
	})
}

func TestFileCatalog_Products(t *testing.T) {
	t.Run("parses products", func(t *testing.T) {
		catalog := NewFileCatalog(writeCatalog(t, testCatalog))

		products, err := catalog.Products()

		require.NoError(t, err)
		require.Len(t, products, 4)
		assert.Equal(t, model.Product{ID: "p1", Title: "Camiseta", Price: 50, Stock: 3, Category: "Roupas"}, products[0])
		assert.Zero(t, products[3].Price)
	})

	t.Run("document without products key", func(t *testing.T) {
		catalog := NewFileCatalog(writeCatalog(t, `{}`))

		products, err := catalog.Products()

		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("wrong document shape", func(t *testing.T) {
		catalog := NewFileCatalog(writeCatalog(t, `[{"id": "p1"}]`))

		_, err := catalog.Products()

		assert.ErrorIs(t, err, model.ErrCatalogRead)
	})

	t.Run("file is read on every call", func(t *testing.T) {
		path := writeCatalog(t, `{"products": [{"id": "p1", "price": 10}]}`)
		catalog := NewFileCatalog(path)

		first, err := catalog.Products()
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte(`{"products": [{"id": "p1", "price": 12}]}`), 0644))
		second, err := catalog.Products()
		require.NoError(t, err)

		assert.Equal(t, 10.0, first[0].Price)
		assert.Equal(t, 12.0, second[0].Price)
	})
}

func TestFileCatalog_Summary(t *testing.T) {
	catalog := NewFileCatalog(writeCatalog(t, testCatalog))

	summary, err := catalog.Summary()

	require.NoError(t, err)
	assert.Equal(t, 4, summary.Products)
	assert.Equal(t, []string{"p1"}, summary.Duplicates)
	assert.Equal(t, []string{"gift"}, summary.Unpriced)
	assert.Equal(t, []string{"Casa", "Roupas"}, summary.Categories)
}
