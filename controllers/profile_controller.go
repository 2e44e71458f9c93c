package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"homestay-backend/middleware"
	"homestay-backend/utils"
)

const profilePage = "profile.html"

type ProfileController struct {
	Users UserStore
}

func NewProfileController(users UserStore) *ProfileController {
	return &ProfileController{Users: users}
}

// Show renders the profile page for the session user.
func (pc *ProfileController) Show(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	c.HTML(http.StatusOK, profilePage, gin.H{"user": user})
}

// Update handles POST /updateProfile. Field errors re-render the form with
// per-field messages and leave the stored profile untouched, including the
// avatar. On success the new values are persisted; the session copy is
// refreshed because the auth middleware reloads the user each request.
func (pc *ProfileController) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	fullName := strings.TrimSpace(c.PostForm("fullName"))
	gmail := strings.TrimSpace(c.PostForm("gmail"))
	sdt := strings.TrimSpace(c.PostForm("sdt"))
	avatarBase64 := c.PostForm("avatarUrl")

	attrs := gin.H{"user": user}

	hasError := false
	if fullName == "" {
		attrs["errorFullName"] = "Full name must not be empty."
		hasError = true
	}
	if gmail != "" && !utils.ValidEmail(gmail) {
		attrs["errorGmail"] = "Email is not valid."
		hasError = true
	}
	if sdt != "" && !utils.ValidPhone(sdt) {
		attrs["errorSdt"] = "Phone number is not valid (9-12 digits)."
		hasError = true
	}
	if hasError {
		c.HTML(http.StatusBadRequest, profilePage, attrs)
		return
	}

	// Keep the stored avatar unless a different blob was submitted.
	avatarURL := user.AvatarURL
	if trimmed := strings.TrimSpace(avatarBase64); trimmed != "" && trimmed != avatarURL {
		avatarURL = trimmed
	}

	user.FullName = fullName
	user.Gmail = gmail
	user.Sdt = sdt
	user.AvatarURL = avatarURL

	if err := pc.Users.UpdateProfile(c.Request.Context(), user); err != nil {
		log.Printf("profile update failed for %s: %v", user.UserID, err)
		attrs["errorMessage"] = "Update failed, please try again."
		c.HTML(http.StatusInternalServerError, profilePage, attrs)
		return
	}

	c.HTML(http.StatusOK, profilePage, gin.H{
		"user":           user,
		"successMessage": "Your profile has been updated!",
	})
}
