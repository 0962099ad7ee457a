package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	forumerrors "agora/contexts/community/forum-service/domain/errors"
	forumhttp "agora/contexts/community/forum-service/transport/http"
)

func writeForumError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, forumhttp.ErrorResponse{Code: code, Message: message})
}

func writeForumDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, forumerrors.ErrInvalidRequest):
		writeForumError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, forumerrors.ErrPostNotFound),
		errors.Is(err, forumerrors.ErrReplyNotFound):
		writeForumError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		writeForumError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req forumhttp.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeForumError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.forum.Handler.CreatePostHandler(r.Context(), req)
	if err != nil {
		writeForumDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitRaw := r.URL.Query().Get("limit"); limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil {
			writeForumError(w, http.StatusBadRequest, "invalid_limit", "limit must be an integer")
			return
		}
		limit = parsed
	}

	resp, err := s.forum.Handler.ListPostsHandler(r.Context(), limit)
	if err != nil {
		writeForumDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreateReply(w http.ResponseWriter, r *http.Request) {
	var req forumhttp.CreateReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeForumError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.forum.Handler.CreateReplyHandler(r.Context(), req)
	if err != nil {
		writeForumDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleReact(w http.ResponseWriter, r *http.Request) {
	var req forumhttp.ReactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeForumError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.forum.Handler.ReactHandler(r.Context(), req)
	if err != nil {
		writeForumDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	var req forumhttp.FollowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeForumError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.forum.Handler.FollowHandler(r.Context(), req)
	if err != nil {
		writeForumDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFollowList(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.forum.Handler.FollowListHandler(r.Context(), query.Get("account_id"), query.Get("kind"))
	if err != nil {
		writeForumDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
