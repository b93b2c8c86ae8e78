package handlers

import (
	"net/http"
	"strings"
	"time"

	"rehabus/internal/domain"
	"rehabus/internal/domain/models"
	"rehabus/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues member tokens.
type AuthHandler struct {
	Members repositories.MemberRepository
	Secret  []byte
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	member, hash, err := h.Members.FindCredentials(strings.TrimSpace(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		RespondDomainError(c, err)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		RespondError(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	token, err := h.issueToken(member)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "member": member})
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to hash password", err)
		return
	}

	member := models.Member{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Status:  "active",
	}
	id, err := h.Members.Insert(member, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	member.ID = id

	token, err := h.issueToken(member)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue token", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token, "member": member})
}

func (h AuthHandler) issueToken(m models.Member) (string, error) {
	claims := jwt.MapClaims{
		"sub":  m.ID,
		"name": m.Name,
		"role": "member",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(h.Secret)
}
