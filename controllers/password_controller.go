package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"homestay-backend/services"
	"homestay-backend/utils"
)

const (
	forgotPage = "forgot-password.html"
	resetPage  = "reset-password.html"
)

// ResetMailer delivers the reset link. Failures are reported to the user
// with the same generic message as a persistence failure.
type ResetMailer func(recipientEmail, name, token string) error

// PasswordController owns the forgot/reset password flows.
type PasswordController struct {
	Users  UserStore
	Mailer ResetMailer
}

func NewPasswordController(users UserStore) *PasswordController {
	return &PasswordController{Users: users, Mailer: utils.SendResetPasswordEmail}
}

// ShowForgot renders the forgot-password form.
func (pc *PasswordController) ShowForgot(c *gin.Context) {
	c.HTML(http.StatusOK, forgotPage, gin.H{})
}

// Forgot handles POST /forgotPassword: look up the account, persist a fresh
// single-use token and hand the link to the mailer. Token persistence and
// email dispatch failures surface as the same generic message.
func (pc *PasswordController) Forgot(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	attrs := gin.H{"email": email}

	if email == "" {
		attrs["errorMessage"] = "Please enter your email!"
		c.HTML(http.StatusBadRequest, forgotPage, attrs)
		return
	}

	user, err := pc.Users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			attrs["errorMessage"] = "This email does not exist in the system!"
			c.HTML(http.StatusNotFound, forgotPage, attrs)
			return
		}
		log.Printf("forgot password lookup failed: %v", err)
		attrs["errorMessage"] = "System error, please try again later!"
		c.HTML(http.StatusInternalServerError, forgotPage, attrs)
		return
	}

	token := uuid.NewString()
	if err := pc.Users.SaveResetToken(c.Request.Context(), user.UserID, token); err != nil {
		log.Printf("failed to save reset token: %v", err)
		attrs["errorMessage"] = "Could not create the reset link. Please try again later!"
		c.HTML(http.StatusInternalServerError, forgotPage, attrs)
		return
	}

	if err := pc.Mailer(user.Gmail, user.FullName, token); err != nil {
		log.Printf("failed to send reset email: %v", err)
		attrs["errorMessage"] = "Could not create the reset link. Please try again later!"
		c.HTML(http.StatusInternalServerError, forgotPage, attrs)
		return
	}

	attrs["successMessage"] = "An email has been sent to " + email + " with reset instructions."
	c.HTML(http.StatusOK, forgotPage, attrs)
}

// ShowReset handles GET /resetPassword?token=...: the reset form is shown
// only when the link still resolves to an account.
func (pc *PasswordController) ShowReset(c *gin.Context) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		c.HTML(http.StatusBadRequest, resetPage, gin.H{"errorMessage": "This link is not valid!"})
		return
	}

	if _, err := pc.Users.ValidateResetToken(c.Request.Context(), token); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, resetPage, gin.H{"errorMessage": "This link is invalid or has expired!"})
			return
		}
		log.Printf("reset token lookup failed: %v", err)
		c.HTML(http.StatusInternalServerError, resetPage, gin.H{"errorMessage": "System error, please try again later!"})
		return
	}

	c.HTML(http.StatusOK, resetPage, gin.H{"token": token})
}

// Reset handles POST /resetPassword. The two submitted passwords must match
// exactly; the token is validated again, and cleared immediately after the
// password update so a second use of the same link fails.
func (pc *PasswordController) Reset(c *gin.Context) {
	token := strings.TrimSpace(c.PostForm("token"))
	newPassword := c.PostForm("newPassword")
	confirmPassword := c.PostForm("confirmPassword")

	if token == "" {
		c.HTML(http.StatusBadRequest, resetPage, gin.H{"errorMessage": "This link is not valid!"})
		return
	}

	if newPassword != confirmPassword {
		c.HTML(http.StatusBadRequest, resetPage, gin.H{
			"errorMessage": "Password confirmation does not match!",
			"token":        token,
		})
		return
	}

	user, err := pc.Users.ValidateResetToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.HTML(http.StatusNotFound, resetPage, gin.H{"errorMessage": "This link is invalid or has expired!"})
			return
		}
		log.Printf("reset token lookup failed: %v", err)
		c.HTML(http.StatusInternalServerError, resetPage, gin.H{"errorMessage": "System error, please try again later!"})
		return
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		log.Printf("failed to hash password: %v", err)
		c.HTML(http.StatusInternalServerError, resetPage, gin.H{
			"errorMessage": "System error, please try again later!",
			"token":        token,
		})
		return
	}

	if err := pc.Users.UpdatePassword(c.Request.Context(), user.UserID, hash); err != nil {
		log.Printf("failed to update password: %v", err)
		c.HTML(http.StatusInternalServerError, resetPage, gin.H{
			"errorMessage": "Could not update the password. Please try again later!",
			"token":        token,
		})
		return
	}

	if err := pc.Users.ClearToken(c.Request.Context(), user.UserID); err != nil {
		// The password change already landed. Log it; the token row will be
		// overwritten by the next reset request.
		log.Printf("failed to clear reset token for %s: %v", user.UserID, err)
	}

	c.HTML(http.StatusOK, loginPage, gin.H{
		"successMessage": "Your password has been reset. Please log in!",
	})
}
