package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homestay-backend/middleware"
	"homestay-backend/models"
	"homestay-backend/utils"
)

// UserStore is the slice of the user service the account controllers need.
type UserStore interface {
	GetByID(ctx context.Context, userID string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	ExistsByID(ctx context.Context, userID string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	UpdateProfile(ctx context.Context, user models.User) error
	SaveResetToken(ctx context.Context, userID, token string) error
	ValidateResetToken(ctx context.Context, token string) (models.User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	ClearToken(ctx context.Context, userID string) error
}

const loginPage = "login-regis.html"

type AuthController struct {
	Users UserStore
}

func NewAuthController(users UserStore) *AuthController {
	return &AuthController{Users: users}
}

// ShowLogin renders the combined login/registration page.
func (ac *AuthController) ShowLogin(c *gin.Context) {
	c.HTML(http.StatusOK, loginPage, gin.H{})
}

// Login handles POST /login. On success the session cookie is set and the
// visitor lands on the home page; on failure the form is re-rendered with the
// username preserved. The password never is.
func (ac *AuthController) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	if username == "" || password == "" {
		c.HTML(http.StatusBadRequest, loginPage, gin.H{
			"errorMessage": "Please enter your username and password.",
			"username":     username,
		})
		return
	}

	user, err := ac.Users.GetByID(c.Request.Context(), username)
	if err != nil || !utils.CheckPassword(user.Password, password) {
		c.HTML(http.StatusUnauthorized, loginPage, gin.H{
			"errorMessage": "Incorrect username or password.",
			"username":     username,
		})
		return
	}

	token, err := utils.GenerateSessionToken(user.UserID, user.RoleID)
	if err != nil {
		log.Printf("failed to issue session token: %v", err)
		c.HTML(http.StatusInternalServerError, loginPage, gin.H{
			"errorMessage": "System error, please try again later.",
			"username":     username,
		})
		return
	}

	c.SetCookie(middleware.SessionCookie, token, 24*60*60, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Register handles POST /register. Any field error re-renders the form with
// per-field messages and the non-sensitive values preserved; no user record
// is created in that case.
func (ac *AuthController) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	fullName := strings.TrimSpace(c.PostForm("fullName"))
	gmail := strings.TrimSpace(c.PostForm("gmail"))
	sdt := strings.TrimSpace(c.PostForm("sdt"))
	password := c.PostForm("password")
	confirmPassword := c.PostForm("confirmPassword")

	attrs := gin.H{
		"showRegister": true,
		"regUsername":  username,
		"regFullName":  fullName,
		"regGmail":     gmail,
		"regSdt":       sdt,
	}

	hasError := false
	if username == "" {
		attrs["errorUsername"] = "Username must not be empty."
		hasError = true
	}
	if fullName == "" {
		attrs["errorFullName"] = "Full name must not be empty."
		hasError = true
	}
	if !utils.ValidEmail(gmail) {
		attrs["errorGmail"] = "Email is not valid."
		hasError = true
	}
	if sdt != "" && !utils.ValidPhone(sdt) {
		attrs["errorSdt"] = "Phone number is not valid (9-12 digits)."
		hasError = true
	}
	if password == "" {
		attrs["errorPassword"] = "Password must not be empty."
		hasError = true
	} else if password != confirmPassword {
		attrs["errorConfirm"] = "Password confirmation does not match."
		hasError = true
	}
	if hasError {
		c.HTML(http.StatusBadRequest, loginPage, attrs)
		return
	}

	ctx := c.Request.Context()
	if taken, err := ac.Users.ExistsByID(ctx, username); err != nil {
		log.Printf("registration lookup failed: %v", err)
		attrs["errorMessage"] = "System error, please try again later."
		c.HTML(http.StatusInternalServerError, loginPage, attrs)
		return
	} else if taken {
		attrs["errorUsername"] = "This username is already taken."
		c.HTML(http.StatusConflict, loginPage, attrs)
		return
	}
	if taken, err := ac.Users.ExistsByEmail(ctx, gmail); err != nil {
		log.Printf("registration lookup failed: %v", err)
		attrs["errorMessage"] = "System error, please try again later."
		c.HTML(http.StatusInternalServerError, loginPage, attrs)
		return
	} else if taken {
		attrs["errorGmail"] = "This email is already registered."
		c.HTML(http.StatusConflict, loginPage, attrs)
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("failed to hash password: %v", err)
		attrs["errorMessage"] = "System error, please try again later."
		c.HTML(http.StatusInternalServerError, loginPage, attrs)
		return
	}

	user := models.User{
		UserID:   username,
		FullName: fullName,
		RoleID:   models.RoleUser,
		Password: hash,
		Gmail:    gmail,
		Sdt:      sdt,
	}
	if err := ac.Users.Create(ctx, &user); err != nil {
		log.Printf("failed to create user: %v", err)
		attrs["errorMessage"] = "System error, please try again later."
		c.HTML(http.StatusInternalServerError, loginPage, attrs)
		return
	}

	c.HTML(http.StatusOK, loginPage, gin.H{
		"successMessage": "Your account has been created. Please log in!",
		"username":       username,
	})
}

// Logout clears the session cookie.
func (ac *AuthController) Logout(c *gin.Context) {
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}
