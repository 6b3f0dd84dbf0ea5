package routehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lakonic/noted/auth"
	"github.com/lakonic/noted/datastore"
	"github.com/lakonic/noted/models"
	"github.com/lakonic/noted/webutil"
)

// Server-side bound; the client mirrors it but only this one is enforced.
const minPasswordLength = 6

type AuthHandler struct {
	Users  datastore.UserStore
	Secret []byte
}

func NewAuthHandler(users datastore.UserStore, secret []byte) *AuthHandler {
	return &AuthHandler{Users: users, Secret: secret}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Token string `json:"token"`
}

func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) error {
	creds, err := decodeCredentials(r)
	if err != nil {
		return err
	}
	if len(creds.Password) < minPasswordLength {
		return webutil.ErrBadRequest("Password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := models.User{
		ID:           uuid.NewString(),
		Email:        creds.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.Users.CreateUser(r.Context(), &newUser); err != nil {
		if errors.Is(err, datastore.ErrDuplicateEmail) {
			return webutil.ErrBadRequest("Email in use")
		}
		return fmt.Errorf("failed to create user %s: %w", newUser.Email, err)
	}

	return h.respondWithToken(w, &newUser)
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) error {
	creds, err := decodeCredentials(r)
	if err != nil {
		return err
	}

	user, err := h.Users.GetUserByEmail(r.Context(), creds.Email)
	if err != nil {
		if errors.Is(err, datastore.ErrNotFound) {
			// Same message as a wrong password so callers cannot probe
			// which part was wrong.
			return webutil.ErrBadRequest("Invalid credentials")
		}
		return fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, creds.Password) {
		return webutil.ErrBadRequest("Invalid credentials")
	}

	return h.respondWithToken(w, user)
}

// HandleLogout acknowledges the request. Tokens are stateless and expire on
// their own; discarding the client's copy is the whole logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) error {
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
	return nil
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User) error {
	token, err := auth.GenerateToken(user.ID, h.Secret)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	webutil.RespondWithJSON(w, http.StatusOK, authResponse{
		ID:    user.ID,
		Email: user.Email,
		Token: token,
	})
	return nil
}

func decodeCredentials(r *http.Request) (*credentialsRequest, error) {
	var creds credentialsRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&creds); err != nil {
		return nil, webutil.ErrBadRequest("Invalid request payload: " + err.Error())
	}
	defer r.Body.Close()

	creds.Email = strings.TrimSpace(strings.ToLower(creds.Email))
	if creds.Email == "" || creds.Password == "" {
		return nil, webutil.ErrBadRequest("Email and password are required")
	}
	return &creds, nil
}
