package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Shivanand-hulikatti/community-hub/internal/service"
)

type submitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListReviews handles GET /reviews?limit=N
// Returns public reviews and their average rating.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	feed, err := h.reviews.ListPublicReviews(r.Context(), limit)
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", feed)
}

// SubmitReview handles POST /reviews
// Accepts JSON or a form post with rating and comment fields.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	member, _ := MemberFrom(r.Context())

	var req submitReviewRequest
	if isForm(r) {
		if err := parseForm(r); err != nil {
			writeError(w, http.StatusBadRequest, codeBadRequest, "invalid form body")
			return
		}
		rating, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("rating")))
		if err != nil {
			writeError(w, http.StatusBadRequest, string(service.InvalidRating), "Invalid rating value")
			return
		}
		req = submitReviewRequest{Rating: rating, Comment: r.PostForm.Get("comment")}
	} else if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body: "+err.Error())
		return
	}

	review, created, err := h.reviews.SubmitReview(r.Context(), member.ID, req.Rating, req.Comment)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if created {
		writeOK(w, http.StatusCreated, "Review submitted successfully!", review)
		return
	}
	writeOK(w, http.StatusOK, "Review updated successfully!", review)
}

// GetStats handles GET /stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.GetCurrentStats(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeOK(w, http.StatusOK, "", stats)
}

// isForm reports whether the request body is form encoded.
func isForm(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "multipart/form-data")
}
