package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Kraftvoll1/lojinha/pkg/domain/model"
	domain "github.com/Kraftvoll1/lojinha/pkg/domain/service"
)

const (
	indexFile = "index.html"

	msgNoData          = "Nenhum dado recebido."
	msgIncompleteOrder = "Dados do pedido incompletos."
	msgOrderCreated    = "Pedido criado com sucesso."
	msgCatalogNotFound = "Arquivo de produtos não encontrado."
	msgInternalError   = "Erro interno do servidor."
)

type CatalogService interface {
	Raw() ([]byte, error)
}

type OrderService interface {
	PlaceOrder(customer model.Customer, items []model.LineItem) (model.Receipt, error)
}

type Handler struct {
	catalog   CatalogService
	orders    OrderService
	publicDir string
	router    *mux.Router
}

func NewHandler(catalog CatalogService, orders OrderService, publicDir string) *Handler {
	h := &Handler{
		catalog:   catalog,
		orders:    orders,
		publicDir: publicDir,
		router:    mux.NewRouter(),
	}

	h.router.Use(requestIDMiddleware, logMiddleware, recoverMiddleware)

	api := h.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/products", h.listProducts).Methods(http.MethodGet, http.MethodHead)
	api.HandleFunc("/orders", h.placeOrder).Methods(http.MethodPost)

	h.router.PathPrefix("/").HandlerFunc(h.serveStatic).Methods(http.MethodGet, http.MethodHead)
	h.router.NotFoundHandler = http.HandlerFunc(h.fallbackHandler)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

type orderRequest struct {
	Customer model.Customer   `json:"customer"`
	Items    []model.LineItem `json:"items"`
}

type orderResponse struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	OrderID string       `json:"order_id"`
	Totals  model.Totals `json:"totals"`
}

type errorResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	data, err := h.catalog.Raw()
	if err != nil {
		if errors.Is(err, model.ErrCatalogNotFound) {
			log.WithError(err).Warn("Catalog file not found")
			writeError(w, http.StatusNotFound, msgCatalogNotFound)
			return
		}
		log.WithError(err).Error("Cannot read catalog")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.WithError(err).Error("Failed to write response")
	}
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	req, err := decodeOrderRequest(r)
	if err != nil {
		log.WithError(err).WithField("requestId", requestID(r)).Debug("Rejected order body")
		if errors.Is(err, errNoData) {
			writeError(w, http.StatusBadRequest, msgNoData)
			return
		}
		writeError(w, http.StatusBadRequest, msgIncompleteOrder)
		return
	}

	log.WithFields(log.Fields{
		"customer":  req.Customer.Name(),
		"requestId": requestID(r),
	}).Info("Processing new order")

	receipt, err := h.orders.PlaceOrder(req.Customer, req.Items)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeError(w, http.StatusBadRequest, msgIncompleteOrder)
			return
		}
		log.WithError(err).WithField("requestId", requestID(r)).Error("Error processing order")
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusCreated, orderResponse{
		OK:      true,
		Message: msgOrderCreated,
		OrderID: receipt.OrderID.String(),
		Totals:  receipt.Totals,
	})
}

var (
	errNoData          = errors.New("no order data")
	errMalformedFields = errors.New("malformed order fields")
)

// decodeOrderRequest returns errNoData for an empty body, a body that is not a
// JSON object, or an object with no fields at all. A JSON object whose customer
// or items have the wrong shape returns errMalformedFields.
func decodeOrderRequest(r *http.Request) (orderRequest, error) {
	var req orderRequest

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return req, errors.Wrap(errNoData, err.Error())
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return req, errNoData
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return req, errors.Wrap(errNoData, err.Error())
	}
	if len(fields) == 0 {
		return req, errNoData
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		return req, errors.Wrap(errMalformedFields, err.Error())
	}

	return req, nil
}

func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + r.URL.Path)
	if name == "/" {
		name += indexFile
	}

	filePath := filepath.Join(h.publicDir, filepath.FromSlash(name))
	f, err := os.Open(filePath)
	if err != nil {
		log.WithField("path", r.URL.Path).Debug("Static file not found")
		h.fallbackHandler(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		log.WithField("path", r.URL.Path).Debug("Static file not found")
		h.fallbackHandler(w, r)
		return
	}

	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

func (h *Handler) fallbackHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, err := fmt.Fprintf(w, "<h1>Página não encontrada</h1>")
	if err != nil {
		return
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{OK: false, Message: message})
}
