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

type VoteHandler struct {
	service ports.VoteService
}

func NewVoteHandler(service ports.VoteService) *VoteHandler {
	return &VoteHandler{
		service: service,
	}
}

type voteResponse struct {
	ID             int64  `json:"id"`
	RestaurantID   int64  `json:"restaurant_id"`
	RestaurantName string `json:"restaurant_name,omitempty"`
	VoteDate       string `json:"vote_date"`
	VoteTime       string `json:"vote_time"`
}

func toVoteResponse(vote *domain.Vote) voteResponse {
	return voteResponse{
		ID:             vote.ID,
		RestaurantID:   vote.RestaurantID,
		RestaurantName: vote.RestaurantName,
		VoteDate:       vote.VoteDate.Format("2006-01-02"),
		VoteTime:       vote.VoteTime.Format("15:04:05"),
	}
}

func (h *VoteHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	votes, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := make([]voteResponse, 0, len(votes))
	for _, vote := range votes {
		response = append(response, toVoteResponse(vote))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *VoteHandler) GetVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid vote id", http.StatusBadRequest)
		return
	}

	vote, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toVoteResponse(vote))
}

func (h *VoteHandler) GetDistribution(w http.ResponseWriter, r *http.Request) {
	date, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		http.Error(w, "invalid or missing date, expected YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	dist, err := h.service.DistributionOnDate(r.Context(), date)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if dist == nil {
		dist = []domain.VoteDistribution{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dist)
}

// CastVote handles the first vote of the day. The same service path
// also covers changes, so PUT is wired to ChangeVote below.
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	h.castVote(w, r, http.StatusCreated)
}

func (h *VoteHandler) ChangeVote(w http.ResponseWriter, r *http.Request) {
	h.castVote(w, r, http.StatusOK)
}

func (h *VoteHandler) castVote(w http.ResponseWriter, r *http.Request, successStatus int) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	restaurantID, err := strconv.ParseInt(r.URL.Query().Get("restaurantId"), 10, 64)
	if err != nil {
		http.Error(w, "invalid or missing restaurantId", http.StatusBadRequest)
		return
	}

	vote, err := h.service.Cast(r.Context(), restaurantID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successStatus)
	json.NewEncoder(w).Encode(toVoteResponse(vote))
}

func (h *VoteHandler) CancelVote(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r)
	if !ok {
		http.Error(w, "Unauthorized: missing user context", http.StatusUnauthorized)
		return
	}

	if err := h.service.Cancel(r.Context(), userID); err != nil {
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *VoteHandler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrVoteTimeConstraint):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, domain.ErrVoteNotFound), errors.Is(err, domain.ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrVoteConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
