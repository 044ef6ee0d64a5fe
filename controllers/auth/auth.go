package authControllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LemonieOff/ARDeco-server-sub001/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/mail"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/response"
)

// CookieOptions describes how the session token cookie is set.
type CookieOptions struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

type RegisterInput struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Phone           string `json:"phone"`
	City            string `json:"city"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func setTokenCookie(c *gin.Context, opts CookieOptions, token string) {
	c.SetCookie(opts.Name, token, int(opts.MaxAge.Seconds()), "/", "", opts.Secure, true)
}

func clearTokenCookie(c *gin.Context, opts CookieOptions) {
	c.SetCookie(opts.Name, "", -1, "/", "", opts.Secure, true)
}

// POST /register
func Register(db *gorm.DB, jwter *auth.JWTer, mailer mail.Mailer, opts CookieOptions, l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if input.Password != input.PasswordConfirm {
			response.KO(c, http.StatusBadRequest, "Passwords do not match")
			return
		}

		var existing models.User
		err := db.First(&existing, "email = ? AND deleted = ?", input.Email, false).Error
		if err == nil {
			response.KO(c, http.StatusBadRequest, "E-mail already in use")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			response.InternalError(c)
			return
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			response.InternalError(c)
			return
		}

		user := models.User{
			Email:        input.Email,
			PasswordHash: hash,
			FirstName:    input.FirstName,
			LastName:     input.LastName,
			Phone:        input.Phone,
			City:         input.City,
			Role:         models.RoleClient,
			EmailToken:   uuid.NewString(),
		}

		// User and settings are created together so a settings failure
		// never leaves an orphaned account.
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&models.UserSettings{UserID: user.ID}).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				response.KO(c, http.StatusBadRequest, "E-mail already in use")
				return
			}
			response.InternalError(c)
			return
		}

		if err := mailer.SendVerification(user.Email, user.EmailToken); err != nil {
			l.Warn("verification mail not sent", zap.Uint("user_id", user.ID), zap.Error(err))
		}

		token, err := jwter.Issue(user.ID, user.Email)
		if err != nil {
			response.InternalError(c)
			return
		}
		setTokenCookie(c, opts, token)
		response.OK(c, http.StatusCreated, "Account created", user)
	}
}

// POST /login
func Login(db *gorm.DB, jwter *auth.JWTer, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}

		var user models.User
		err := db.First(&user, "email = ? AND deleted = ?", input.Email, false).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.KO(c, http.StatusUnauthorized, "Invalid credentials")
				return
			}
			response.InternalError(c)
			return
		}
		if !auth.CheckPassword(input.Password, user.PasswordHash) {
			response.KO(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := jwter.Issue(user.ID, user.Email)
		if err != nil {
			response.InternalError(c)
			return
		}
		setTokenCookie(c, opts, token)
		response.OK(c, http.StatusOK, "Logged in", user)
	}
}

// POST /login/google
func GoogleLogin(db *gorm.DB, jwter *auth.JWTer, verifier auth.GoogleVerifier, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			IDToken string `json:"id_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			response.KO(c, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		if verifier == nil {
			response.KO(c, http.StatusNotImplemented, "Google login is not configured")
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), input.IDToken)
		if err != nil {
			response.KO(c, http.StatusUnauthorized, "Invalid Google ID token")
			return
		}

		var user models.User
		err = db.First(&user, "email = ? AND deleted = ?", identity.Email, false).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{
				Email:         identity.Email,
				PasswordHash:  "-", // federated accounts have no local password
				FirstName:     identity.Name,
				Role:          models.RoleClient,
				GoogleID:      identity.UID,
				EmailVerified: true,
			}
			txErr := db.Transaction(func(tx *gorm.DB) error {
				if err := tx.Create(&user).Error; err != nil {
					return err
				}
				return tx.Create(&models.UserSettings{UserID: user.ID}).Error
			})
			if txErr != nil {
				response.InternalError(c)
				return
			}
		case err != nil:
			response.InternalError(c)
			return
		default:
			if user.GoogleID == "" {
				db.Model(&user).Update("google_id", identity.UID)
			}
		}

		token, err := jwter.Issue(user.ID, user.Email)
		if err != nil {
			response.InternalError(c)
			return
		}
		setTokenCookie(c, opts, token)
		response.OK(c, http.StatusOK, "Logged in", user)
	}
}

// GET /logout
func Logout(opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		clearTokenCookie(c, opts)
		response.OK(c, http.StatusOK, "Logged out", nil)
	}
}

// GET /profile
func Profile() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		response.OK(c, http.StatusOK, "Profile", user)
	}
}

// DELETE /close
func CloseAccount(db *gorm.DB, opts CookieOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		if user == nil {
			response.NotConnected(c)
			return
		}
		if err := db.Model(user).Update("deleted", true).Error; err != nil {
			response.InternalError(c)
			return
		}
		clearTokenCookie(c, opts)
		response.OK(c, http.StatusOK, "Account closed", nil)
	}
}

// GET /verify/:token
func VerifyEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		var user models.User
		if err := db.First(&user, "email_token = ? AND deleted = ?", token, false).Error; err != nil {
			response.KO(c, http.StatusNotFound, "Unknown verification token")
			return
		}
		if err := db.Model(&user).Update("email_verified", true).Error; err != nil {
			response.InternalError(c)
			return
		}
		response.OK(c, http.StatusOK, "E-mail verified", nil)
	}
}
