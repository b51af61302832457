package web

import (
	"net/http"

	"rope-coach/internal/models"
	"rope-coach/internal/service"
)

func (h *Handler) Finance(w http.ResponseWriter, r *http.Request) {
	summary, err := h.billingService.GetFinance(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) Renewals(w http.ResponseWriter, r *http.Request) {
	wallets, err := h.billingService.GetRenewals(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if wallets == nil {
		wallets = []models.LessonWallet{}
	}
	h.writeJSON(w, http.StatusOK, wallets)
}

type buyPackageRequest struct {
	Lessons float64 `json:"lessons"`
	Price   float64 `json:"price"`
	Method  string  `json:"method"`
	Remark  string  `json:"remark"`
}

type buyPackageResponse struct {
	Package *models.LessonPackage `json:"package"`
	Payment *models.PaymentRecord `json:"payment"`
}

// BuyPackage оформляет покупку пакета занятий студентом из пути
func (h *Handler) BuyPackage(w http.ResponseWriter, r *http.Request) {
	var req buyPackageRequest
	if !h.decode(w, r, &req) {
		return
	}
	method, err := models.ParsePaymentMethod(req.Method)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	pkg, payment, err := h.billingService.BuyPackage(r.Context(), service.BuyRequest{
		StudentID: r.PathValue("id"),
		Lessons:   req.Lessons,
		Price:     req.Price,
		Method:    method,
		Remark:    req.Remark,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, buyPackageResponse{Package: pkg, Payment: payment})
}
