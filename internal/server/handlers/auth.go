package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pari08yadav/train-ticket-booking/internal/server/store"
	"github.com/pari08yadav/train-ticket-booking/internal/utils"
)

// Handler carries the dependencies of every endpoint.
type Handler struct {
	Store    store.Store
	Secret   []byte
	TokenTTL time.Duration
}

func (h Handler) tokenTTL() time.Duration {
	if h.TokenTTL > 0 {
		return h.TokenTTL
	}
	return 24 * time.Hour
}

type signupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// POST /api/signup/
func (h Handler) Signup(c *gin.Context) {
	var req signupRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		RespondError(c, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	id, err := h.Store.CreateUser(store.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.TrimSpace(req.Email),
		PhoneNumber:  strings.TrimSpace(req.PhoneNumber),
		PasswordHash: string(hash),
	})
	if err != nil {
		if errors.Is(err, store.ErrUserExists) {
			RespondError(c, http.StatusBadRequest, "email or username already registered")
			return
		}
		RespondError(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	utils.LogEvent(requestID(c), "auth", "signup", "user_id="+itoa(id))
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user": gin.H{
			"id":           id,
			"username":     req.Username,
			"email":        req.Email,
			"phone_number": req.PhoneNumber,
		},
	})
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// POST /api/login/
func (h Handler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	user, err := h.Store.UserByIdentifier(strings.TrimSpace(req.Identifier))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(h.tokenTTL()).Unix(),
	})
	access, err := token.SignedString(h.Secret)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to create token")
		return
	}

	utils.LogEvent(requestID(c), "auth", "login", "user_id="+itoa(user.ID))
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"username":     user.Username,
			"email":        user.Email,
			"phone_number": user.PhoneNumber,
		},
		"tokens": gin.H{"access": access},
	})
}
