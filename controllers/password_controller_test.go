package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homestay-backend/models"
	"homestay-backend/utils"
)

type sentMail struct {
	to, name, token string
}

func newPasswordRouter(t *testing.T, users *fakeUserStore, mails *[]sentMail, mailErr error) *gin.Engine {
	t.Helper()
	pc := &PasswordController{
		Users: users,
		Mailer: func(to, name, token string) error {
			if mailErr != nil {
				return mailErr
			}
			*mails = append(*mails, sentMail{to: to, name: name, token: token})
			return nil
		},
	}

	r := newTestRouter(t)
	r.GET("/forgotPassword", pc.ShowForgot)
	r.POST("/forgotPassword", pc.Forgot)
	r.GET("/resetPassword", pc.ShowReset)
	r.POST("/resetPassword", pc.Reset)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestForgotPasswordSendsToken(t *testing.T) {
	users := newFakeUserStore(models.User{
		UserID:   "minh",
		FullName: "Minh Tran",
		Gmail:    "minh@example.com",
	})
	var mails []sentMail
	r := newPasswordRouter(t, users, &mails, nil)

	w := postForm(r, "/forgotPassword", url.Values{"email": {"minh@example.com"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "minh@example.com")

	require.Len(t, mails, 1)
	assert.Equal(t, "minh@example.com", mails[0].to)
	require.NotNil(t, users.get("minh").Token)
	assert.Equal(t, *users.get("minh").Token, mails[0].token)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	users := newFakeUserStore()
	var mails []sentMail
	r := newPasswordRouter(t, users, &mails, nil)

	w := postForm(r, "/forgotPassword", url.Values{"email": {"ghost@example.com"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "does not exist")
	assert.Empty(t, mails)
}

func TestForgotPasswordGenericErrorHidesCause(t *testing.T) {
	user := models.User{UserID: "minh", Gmail: "minh@example.com"}

	// Token persistence failure.
	users := newFakeUserStore(user)
	users.failSaveToken = true
	var mails []sentMail
	r := newPasswordRouter(t, users, &mails, nil)
	w := postForm(r, "/forgotPassword", url.Values{"email": {"minh@example.com"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	persistenceMsg := w.Body.String()

	// Email dispatch failure reads exactly the same.
	users = newFakeUserStore(user)
	r = newPasswordRouter(t, users, &mails, errors.New("smtp down"))
	w = postForm(r, "/forgotPassword", url.Values{"email": {"minh@example.com"}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, persistenceMsg, w.Body.String())
	assert.Contains(t, persistenceMsg, "Could not create the reset link")
}

func TestShowResetValidatesToken(t *testing.T) {
	token := "tok-123"
	users := newFakeUserStore(models.User{UserID: "minh", Token: &token})
	var mails []sentMail
	r := newPasswordRouter(t, users, &mails, nil)

	// Missing token.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resetPassword", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not valid")

	// Unknown token.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resetPassword?token=nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or has expired")

	// Valid token shows the form carrying it.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resetPassword?token=tok-123", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tok-123")
}

func TestResetPasswordMismatch(t *testing.T) {
	token := "tok-123"
	users := newFakeUserStore(models.User{UserID: "minh", Token: &token, Password: "old-hash"})
	var mails []sentMail
	r := newPasswordRouter(t, users, &mails, nil)

	w := postForm(r, "/resetPassword", url.Values{
		"token":           {token},
		"newPassword":     {"secret1"},
		"confirmPassword": {"secret2"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "does not match")
	assert.Equal(t, "old-hash", users.get("minh").Password)
	// The token survives a mismatch so the form can be resubmitted.
	assert.Contains(t, w.Body.String(), token)
}

func TestResetTokenIsSingleUse(t *testing.T) {
	token := "tok-123"
	users := newFakeUserStore(models.User{UserID: "minh", Token: &token, Password: "old-hash"})
	var mails []sentMail
	r := newPasswordRouter(t, users, &mails, nil)

	form := url.Values{
		"token":           {token},
		"newPassword":     {"new-secret"},
		"confirmPassword": {"new-secret"},
	}

	w := postForm(r, "/resetPassword", form)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "has been reset")

	stored := users.get("minh")
	assert.Nil(t, stored.Token, "token must be cleared after use")
	assert.True(t, utils.CheckPassword(stored.Password, "new-secret"))

	// Second use of the same link reports invalid/expired.
	w = postForm(r, "/resetPassword", form)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "invalid or has expired")
}
