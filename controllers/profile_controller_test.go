package controllers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"homestay-backend/models"
)

func newProfileRouter(t *testing.T, users *fakeUserStore, session models.User) *gin.Engine {
	t.Helper()
	pc := NewProfileController(users)

	r := newTestRouter(t)
	r.POST("/updateProfile", asUser(session), pc.Update)
	return r
}

func TestUpdateProfileEmptyFullNameRejected(t *testing.T) {
	stored := models.User{
		UserID:    "minh",
		FullName:  "Minh Tran",
		Gmail:     "minh@example.com",
		Sdt:       "0912345678",
		AvatarURL: "data:image/png;base64,AAAA",
	}
	users := newFakeUserStore(stored)
	r := newProfileRouter(t, users, stored)

	w := postForm(r, "/updateProfile", url.Values{
		"fullName": {""},
		"gmail":    {"new@example.com"},
		"sdt":      {"0999999999"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Full name must not be empty")

	// The stored profile is untouched, avatar included.
	assert.Equal(t, stored, users.get("minh"))
	assert.Equal(t, 0, users.updateCalls)
}

func TestUpdateProfileInvalidPhoneRejected(t *testing.T) {
	stored := models.User{UserID: "minh", FullName: "Minh Tran"}
	users := newFakeUserStore(stored)
	r := newProfileRouter(t, users, stored)

	w := postForm(r, "/updateProfile", url.Values{
		"fullName": {"Minh Tran"},
		"sdt":      {"12ab34"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Phone number is not valid")
	assert.Equal(t, 0, users.updateCalls)
}

func TestUpdateProfilePersistsChanges(t *testing.T) {
	stored := models.User{
		UserID:    "minh",
		FullName:  "Minh Tran",
		AvatarURL: "data:image/png;base64,OLD",
	}
	users := newFakeUserStore(stored)
	r := newProfileRouter(t, users, stored)

	w := postForm(r, "/updateProfile", url.Values{
		"fullName":  {"Minh T. Tran"},
		"gmail":     {"minh@example.com"},
		"sdt":       {"+84912345678"},
		"avatarUrl": {"data:image/png;base64,NEW"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "has been updated")

	updated := users.get("minh")
	assert.Equal(t, "Minh T. Tran", updated.FullName)
	assert.Equal(t, "minh@example.com", updated.Gmail)
	assert.Equal(t, "+84912345678", updated.Sdt)
	assert.Equal(t, "data:image/png;base64,NEW", updated.AvatarURL)
}

func TestUpdateProfileKeepsAvatarWhenBlank(t *testing.T) {
	stored := models.User{
		UserID:    "minh",
		FullName:  "Minh Tran",
		AvatarURL: "data:image/png;base64,OLD",
	}
	users := newFakeUserStore(stored)
	r := newProfileRouter(t, users, stored)

	w := postForm(r, "/updateProfile", url.Values{
		"fullName":  {"Minh Tran"},
		"avatarUrl": {""},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "data:image/png;base64,OLD", users.get("minh").AvatarURL)
}
