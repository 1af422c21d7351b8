package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/tarun33333/classsync/internal/auth"
	"github.com/tarun33333/classsync/internal/models"
	"github.com/tarun33333/classsync/internal/store"
)

type UserHandler struct {
	users     store.UserStore
	jwtSecret []byte
}

func NewUserHandler(users store.UserStore, jwtSecret []byte) *UserHandler {
	return &UserHandler{users: users, jwtSecret: jwtSecret}
}

type authResponse struct {
	ID         primitive.ObjectID `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       models.UserRole    `json:"role"`
	MacAddress string             `json:"mac_address,omitempty"`
	Token      string             `json:"token"`
}

// Register handles user registration
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string `json:"name"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		Role       string `json:"role"`
		RollNumber string `json:"roll_number"`
		Department string `json:"department"`
		Section    string `json:"section"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Name, email and password are required", http.StatusBadRequest)
		return
	}
	role := models.UserRole(req.Role)
	if role != models.RoleTeacher && role != models.RoleStudent {
		http.Error(w, "Role must be teacher or student", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Failed to hash password", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Email:      req.Email,
		Password:   string(hashedPassword),
		Role:       role,
		RollNumber: req.RollNumber,
		Department: req.Department,
		Section:    req.Section,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.users.Insert(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			http.Error(w, "User already exists", http.StatusConflict)
			return
		}
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateJWT(h.jwtSecret, user.ID.Hex(), string(user.Role))
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		Token: token,
	})
}

// Login handles credential check and, for students, device binding: the
// first login binds the device MAC, later logins must present the same one.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		MacAddress string `json:"mac_address"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	if user.Role == models.RoleStudent && req.MacAddress != "" {
		if user.MacAddress == "" {
			if err := h.users.SetMacAddress(ctx, user.ID, req.MacAddress); err != nil {
				http.Error(w, "Failed to bind device", http.StatusInternalServerError)
				return
			}
			user.MacAddress = req.MacAddress
		} else if user.MacAddress != req.MacAddress {
			http.Error(w, "Device not recognized. Please use your registered device.", http.StatusForbidden)
			return
		}
	}

	token, err := auth.GenerateJWT(h.jwtSecret, user.ID.Hex(), string(user.Role))
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		ID:         user.ID,
		Name:       user.Name,
		Email:      user.Email,
		Role:       user.Role,
		MacAddress: user.MacAddress,
		Token:      token,
	})
}
