package handler

import (
	"net/http"

	"github.com/templui/goalpace/internal/ctxkeys"
	"github.com/templui/goalpace/internal/service"
)

type SaleHandler struct {
	saleService *service.SaleService
}

func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
	}
}

func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var input service.RecordSaleInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	sale, err := h.saleService.RecordSale(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, sale)
}

func (h *SaleHandler) RecordAdSpend(w http.ResponseWriter, r *http.Request) {
	userID := ctxkeys.UserID(r.Context())

	var input service.RecordAdSpendInput
	err := decodeJSON(w, r, &input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	spend, err := h.saleService.RecordAdSpend(r.Context(), userID, input)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, spend)
}
