package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/configs"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/logging"
	"github.com/rahmasarii/Antaraya-PaymentGateway-sub000/internal/security"
)

// OTPStore holds short-lived login codes, keyed by operator email.
type OTPStore interface {
	Put(ctx context.Context, email, code string) error
	Consume(ctx context.Context, email, code string) (bool, error)
}

// Mailer sends a single message; used here for OTP delivery.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TokenHandler implements the admin login flow: email OTP in, JWT out.
type TokenHandler struct {
	cfg    configs.Config
	otp    OTPStore
	mailer Mailer
}

func NewTokenHandler(cfg configs.Config, otp OTPStore, mailer Mailer) *TokenHandler {
	return &TokenHandler{cfg: cfg, otp: otp, mailer: mailer}
}

type otpRequestReq struct {
	Email string `json:"email" binding:"required,email"`
}

// RequestOTP handler: POST /v1/token/request. Only the configured
// operator address may log in; unknown addresses get the same response as
// known ones so the endpoint doesn't leak which address is real.
func (h *TokenHandler) RequestOTP(c *gin.Context) {
	var req otpRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.EqualFold(email, h.cfg.Notify.OperatorEmail) {
		c.JSON(http.StatusOK, gin.H{"sent": true})
		return
	}

	code, err := security.NewOTPCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.otp.Put(ctx, email, code); err != nil {
		logging.From(c).Error("otp store failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if err := h.mailer.Send(ctx, email, "Kode login Antaraya",
		"Kode OTP kamu: "+code+" (berlaku "+h.cfg.Security.OTPTTL.String()+")"); err != nil {
		logging.From(c).Error("otp mail failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sent": true})
}

type otpVerifyReq struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

// VerifyOTP handler: POST /v1/token/verify
func (h *TokenHandler) VerifyOTP(c *gin.Context) {
	var req otpVerifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and code are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(req.Email))
	ok, err := h.otp.Consume(ctx, email, req.Code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired code"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      h.cfg.Security.Issuer,
		"aud":      h.cfg.Security.Audience,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(h.cfg.Security.TTL).Unix(),
		"clientID": email,
		"perms":    []string{"orders.admin"},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int64(h.cfg.Security.TTL.Seconds()),
	})
}
