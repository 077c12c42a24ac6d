package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/earnly/earnly-task-service/internal/delivery/http/middleware"
	"github.com/earnly/earnly-task-service/internal/domain"
	"github.com/earnly/earnly-task-service/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ProductHandler struct {
	ProductUsecase usecase.ProductUsecase
}

func NewProductHandler(productUsecase usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{ProductUsecase: productUsecase}
}

type productResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Image          string    `json:"image"`
	Price          string    `json:"price"`
	NegativeAmount string    `json:"negativeAmount"`
	EndDate        time.Time `json:"endDate"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toProductResponse(product *domain.Product) *productResponse {
	return &productResponse{
		ID:             product.ID,
		Name:           product.Name,
		Image:          product.Image,
		Price:          product.Price.String(),
		NegativeAmount: product.NegativeAmount.String(),
		EndDate:        product.EndDate,
		IsActive:       product.IsActive,
		CreatedAt:      product.CreatedAt,
	}
}

func toProductResponses(products []*domain.Product) []*productResponse {
	resp := make([]*productResponse, len(products))
	for i, product := range products {
		resp[i] = toProductResponse(product)
	}
	return resp
}

// GetProducts lists active products without per-user filtering. Used by the
// landing page before login.
func (h *ProductHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.ProductUsecase.GetActiveProducts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

// GetProductsForUser lists active products the caller has not yet submitted,
// with any per-user debit overrides applied.
func (h *ProductHandler) GetProductsForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetSubjectID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	products, err := h.ProductUsecase.GetActiveProductsForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponses(products))
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name           string          `json:"name"`
		Image          string          `json:"image"`
		Price          decimal.Decimal `json:"price"`
		NegativeAmount decimal.Decimal `json:"negativeAmount"`
		EndDate        time.Time       `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.EndDate.IsZero() {
		http.Error(w, "Name and end date are required", http.StatusBadRequest)
		return
	}

	product, err := h.ProductUsecase.CreateProduct(r.Context(), &usecase.CreateProductInput{
		Name:           req.Name,
		Image:          req.Image,
		Price:          req.Price,
		NegativeAmount: req.NegativeAmount,
		EndDate:        req.EndDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductResponse(product))
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")

	var req struct {
		Name           *string          `json:"name"`
		Image          *string          `json:"image"`
		Price          *decimal.Decimal `json:"price"`
		NegativeAmount *decimal.Decimal `json:"negativeAmount"`
		EndDate        *time.Time       `json:"endDate"`
		IsActive       *bool            `json:"isActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	product, err := h.ProductUsecase.UpdateProduct(r.Context(), productID, &domain.ProductUpdate{
		Name:           req.Name,
		Image:          req.Image,
		Price:          req.Price,
		NegativeAmount: req.NegativeAmount,
		EndDate:        req.EndDate,
		IsActive:       req.IsActive,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(product))
}
