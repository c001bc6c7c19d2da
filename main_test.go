package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kraftvoll1/lojinha/pkg/config"
	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	publicDir := filepath.Join(t.TempDir(), "public")
	return &config.Config{
		ListenAddr:  ":0",
		PublicDir:   publicDir,
		CatalogPath: filepath.Join(publicDir, "static", "products.json"),
		LogLevel:    "warn",
	}
}

func TestPrepare_CreatesPublicDirectory(t *testing.T) {
	cfg := newTestConfig(t)
	_, err := os.Stat(cfg.PublicDir)
	require.True(t, os.IsNotExist(err))

	handler, ledger, cleanup, err := prepare(cfg)
	require.NoError(t, err)
	defer cleanup()

	info, err := os.Stat(filepath.Join(cfg.PublicDir, "static"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, ledger.Len())
}

func TestPrepare_WiresOrdersToLedger(t *testing.T) {
	cfg := newTestConfig(t)
	handler, ledger, cleanup, err := prepare(cfg)
	require.NoError(t, err)
	defer cleanup()

	require.NoError(t, os.WriteFile(cfg.CatalogPath, []byte(`{"products": [{"id": "p1", "price": 50}]}`), 0644))

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"customer": {"name": "Ana"}, "items": [{"id": "p1", "qty": 2}]}`)
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/orders", body))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	count, revenue := summarizeOrders(ledger.List())
	assert.Equal(t, 1, count)
	assert.InDelta(t, 119.9, revenue, 1e-9)
}

func TestPrepare_Failures(t *testing.T) {
	t.Run("invalid log level", func(t *testing.T) {
		cfg := newTestConfig(t)
		cfg.LogLevel = "loud"

		_, _, _, err := prepare(cfg)

		assert.Error(t, err)
	})

	t.Run("public path is a file", func(t *testing.T) {
		cfg := newTestConfig(t)
		require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(cfg.PublicDir), "public"), []byte("x"), 0644))

		_, _, _, err := prepare(cfg)

		assert.Error(t, err)
	})
}

func TestSummarizeOrders(t *testing.T) {
	count, revenue := summarizeOrders(nil)
	assert.Zero(t, count)
	assert.Zero(t, revenue)

	count, revenue = summarizeOrders([]model.Order{
		{Subtotal: 100, Shipping: 19.9, Total: 119.9},
		{Subtotal: 250, Shipping: 0, Total: 250},
	})
	assert.Equal(t, 2, count)
	assert.InDelta(t, 369.9, revenue, 1e-9)
}

func TestShippedStorefrontControls(t *testing.T) {
	index, err := os.ReadFile(filepath.Join("public", "index.html"))
	require.NoError(t, err)
	script, err := os.ReadFile(filepath.Join("public", "static", "script.js"))
	require.NoError(t, err)

	for _, id := range []string{"search-input", "category-filter", "sort-select", "summary-subtotal", "summary-shipping", "summary-total"} {
		assert.Contains(t, string(index), `id="`+id+`"`)
		assert.Contains(t, string(script), "#"+id)
	}
	for _, hook := range []string{"cart-qty", "cart-remove", "price-asc", "title-desc"} {
		assert.Contains(t, string(script), hook)
	}
}
