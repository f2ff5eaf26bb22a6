package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/patramstore/storefront-api/internal/domain"
	"github.com/patramstore/storefront-api/internal/repository"
	"github.com/patramstore/storefront-api/internal/whatsapp"
	"github.com/patramstore/storefront-api/pkg/errors"
)

// RegisterRequest creates a customer account
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest authenticates a customer
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// HandleRegisterCustomer handles POST /api/customers/register.
// Credentials are stored bcrypt-hashed, never in plaintext.
func HandleRegisterCustomer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		customer := &domain.Customer{
			Name:         req.Name,
			Email:        req.Email,
			Phone:        req.Phone,
			PasswordHash: string(hash),
		}

		if err := repos.Customer.Create(c.Request.Context(), customer); err != nil {
			logger.Error("Failed to create customer", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":    customer.ID.String(),
			"name":  customer.Name,
			"email": customer.Email,
		})
	}
}

// HandleLoginCustomer handles POST /api/customers/login
func HandleLoginCustomer(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		customer, err := repos.Customer.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
				return
			}
			logger.Error("Failed to get customer", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":    customer.ID.String(),
			"name":  customer.Name,
			"email": customer.Email,
			"phone": customer.Phone,
		})
	}
}

// HandleSearchClient handles GET /api/clients/search?phone=, used to
// prefill the checkout form for a returning customer.
func HandleSearchClient(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		phone := c.Query("phone")
		if phone == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone is required"})
			return
		}

		digits := whatsapp.FormatPhoneNumber(phone)
		if digits == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid phone number"})
			return
		}

		customer, err := repos.Customer.SearchByPhone(c.Request.Context(), digits)
		if err != nil {
			if _, ok := err.(*errors.ErrNotFound); ok {
				c.JSON(http.StatusOK, gin.H{"found": false})
				return
			}
			logger.Error("Failed to search client", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"found": true,
			"client": gin.H{
				"name":  customer.Name,
				"email": customer.Email,
				"phone": customer.Phone,
			},
		})
	}
}
