package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wilqq-the/btc-tracker/src/database"
	"github.com/wilqq-the/btc-tracker/src/logger"
	"github.com/wilqq-the/btc-tracker/src/models"
	"github.com/wilqq-the/btc-tracker/src/security"
	"github.com/wilqq-the/btc-tracker/src/utils"
)

type UserHandler struct {
	authService *security.AuthService
}

func NewUserHandler(authService *security.AuthService) *UserHandler {
	return &UserHandler{
		authService: authService,
	}
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	payload.Username = strings.TrimSpace(payload.Username)
	if payload.Username == "" || len(payload.Password) < 8 {
		utils.SendJSONError(w, "Username required and password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	hash, err := h.authService.HashPassword(payload.Password)
	if err != nil {
		logger.L.Error("Failed to hash password", "error", err)
		utils.SendJSONError(w, "Internal error creating user", http.StatusInternalServerError)
		return
	}
	user := models.User{Username: payload.Username, Password: hash}
	if err := user.CreateUser(database.DB); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique constraint failed") {
			utils.SendJSONError(w, "Username already taken", http.StatusConflict)
			return
		}
		logger.L.Error("Failed to create user", "username", payload.Username, "error", err)
		utils.SendJSONError(w, "Internal error creating user", http.StatusInternalServerError)
		return
	}

	logger.L.Info("User registered", "userID", user.ID, "username", user.Username)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]any{"id": user.ID, "username": user.Username})
}

func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.SendJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, err := models.GetUserByUsername(database.DB, strings.TrimSpace(payload.Username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			utils.SendJSONError(w, "Invalid username or password", http.StatusUnauthorized)
			return
		}
		logger.L.Error("Failed to look up user", "error", err)
		utils.SendJSONError(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if err := h.authService.CompareHashAndPassword(user.Password, payload.Password); err != nil {
		utils.SendJSONError(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	token, err := h.authService.GenerateToken(strconv.FormatInt(user.ID, 10))
	if err != nil {
		logger.L.Error("Failed to generate token", "userID", user.ID, "error", err)
		utils.SendJSONError(w, "Internal error", http.StatusInternalServerError)
		return
	}

	logger.L.Info("User logged in", "userID", user.ID)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"token": token, "user_id": user.ID})
}
