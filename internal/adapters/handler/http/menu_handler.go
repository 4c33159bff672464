package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/FlintbyyS/voteforlunch/internal/core/domain"
	"github.com/FlintbyyS/voteforlunch/internal/core/ports"
)

type MenuHandler struct {
	service ports.MenuService
}

func NewMenuHandler(service ports.MenuService) *MenuHandler {
	return &MenuHandler{
		service: service,
	}
}

type menuRequest struct {
	RestaurantID int64                 `json:"restaurant_id"`
	MenuDate     string                `json:"menu_date"`
	Items        []ports.MenuItemInput `json:"items"`
}

type menuResponse struct {
	ID           int64             `json:"id"`
	RestaurantID int64             `json:"restaurant_id"`
	MenuDate     string            `json:"menu_date"`
	Items        []domain.MenuItem `json:"items"`
}

func toMenuResponse(menu *domain.Menu) menuResponse {
	return menuResponse{
		ID:           menu.ID,
		RestaurantID: menu.RestaurantID,
		MenuDate:     menu.MenuDate.Format("2006-01-02"),
		Items:        menu.Items,
	}
}

func (h *MenuHandler) ListOnDate(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "invalid or missing date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	menus, err := h.service.ListOnDate(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := make([]menuResponse, 0, len(menus))
	for _, menu := range menus {
		response = append(response, toMenuResponse(menu))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid menu id", http.StatusBadRequest)
		return
	}

	menu, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toMenuResponse(menu))
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req menuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", req.MenuDate)
	if err != nil {
		http.Error(w, "invalid menu_date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	menu, err := h.service.Create(r.Context(), ports.MenuInput{
		RestaurantID: req.RestaurantID,
		MenuDate:     date,
		Items:        req.Items,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(toMenuResponse(menu))
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid menu id", http.StatusBadRequest)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *MenuHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrMenuNotFound),
		errors.Is(err, domain.ErrRestaurantNotFound),
		errors.Is(err, domain.ErrDishNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrDuplicateMenu):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
