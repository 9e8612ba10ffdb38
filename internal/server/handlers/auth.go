package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/lans/llm-answer-watcher/internal/auth/session"
	"github.com/lans/llm-answer-watcher/internal/db"
	"github.com/lans/llm-answer-watcher/internal/server/middleware"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type apiKeyRequest struct {
	GoogleAPIKey *string `json:"google_api_key"`
	GroqAPIKey   *string `json:"groq_api_key"`
}

// TokenHandler exchanges form credentials for a bearer token.
func TokenHandler(gateway *session.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid form body")
			return
		}
		email := r.PostFormValue("username")
		plaintext := r.PostFormValue("password")
		if email == "" || plaintext == "" {
			writeDetail(w, http.StatusBadRequest, "Username and password are required")
			return
		}

		tok, err := gateway.Login(email, plaintext)
		if err != nil {
			if errors.Is(err, session.ErrIncorrectCredentials) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeDetail(w, http.StatusUnauthorized, "Incorrect username or password")
				return
			}
			log.Printf("❌ Login failed: %v", err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"access_token": tok,
			"token_type":   "bearer",
		})
	}
}

// RegisterHandler creates a new account.
func RegisterHandler(gateway *session.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		req.Email = strings.TrimSpace(req.Email)
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			writeDetail(w, http.StatusBadRequest, "A valid email is required")
			return
		}
		if req.Password == "" {
			writeDetail(w, http.StatusBadRequest, "Password is required")
			return
		}

		user, err := gateway.Register(req.Email, req.Password)
		if err != nil {
			if errors.Is(err, db.ErrEmailTaken) {
				writeDetail(w, http.StatusBadRequest, "Email already registered")
				return
			}
			log.Printf("❌ Registration failed: %v", err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// MeHandler returns the authenticated account's public view.
func MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		writeJSON(w, http.StatusOK, user)
	}
}

// UpdateAPIKeysHandler stores provider API keys for the authenticated account.
func UpdateAPIKeysHandler(gateway *session.Gateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())

		var req apiKeyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		if _, err := gateway.UpdateAPIKeys(user.ID, req.GoogleAPIKey, req.GroqAPIKey); err != nil {
			log.Printf("❌ API key update failed for user %d: %v", user.ID, err)
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"message": "API keys updated successfully",
		})
	}
}
