package handler

import (
	"errors"
	"net/http"
	"strings"

	"movieflix/internal/model"
	"movieflix/internal/service"
	"movieflix/internal/session"
	"movieflix/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// AuthHandler handles login, logout and session endpoints
type AuthHandler struct {
	auth  Authenticator
	users UserStore
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth Authenticator, users UserStore) *AuthHandler {
	return &AuthHandler{
		auth:  auth,
		users: users,
	}
}

// loginOutcome is a processed login attempt
type loginOutcome struct {
	status int
	user   *model.User
	errors service.ValidationErrors
	msg    string
}

// login validates, authenticates and stores the user of the current visitor
func (h *AuthHandler) login(c *gin.Context, req model.LoginRequest) loginOutcome {
	email := strings.TrimSpace(req.Email)

	result, err := h.auth.Login(c.Request.Context(), email, req.Password)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			return loginOutcome{status: http.StatusBadRequest, errors: verrs}
		}
		log.Warn().Err(err).Msg("Login failed unexpectedly")
		return loginOutcome{status: http.StatusBadGateway, msg: service.MsgLoginError}
	}

	if !result.OK() {
		status := http.StatusUnauthorized
		if result.Message == service.MsgLoginError {
			status = http.StatusBadGateway
		}
		return loginOutcome{status: status, msg: result.Message}
	}

	if err := h.users.Save(c.Request.Context(), visitorID(c), result.User); err != nil {
		log.Error().Err(err).Msg("❌ Failed to store logged-in user")
		return loginOutcome{status: http.StatusInternalServerError, msg: service.MsgLoginError}
	}
	session.Set(c, &session.Context{VisitorID: visitorID(c), User: result.User})
	return loginOutcome{status: http.StatusOK, user: result.User}
}

// LoginPage renders the login form
// GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, view.PageLogin, view.LoginPage{Layout: layoutFor(c, "Login")})
}

// Login handles the login form
// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	_ = c.ShouldBind(&req) // 缺失字段交给 ValidateCredentials 处理

	out := h.login(c, req)
	if out.user != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(out.status, view.PageLogin, view.LoginPage{
		Layout:  layoutFor(c, "Login"),
		Email:   req.Email,
		Errors:  out.errors,
		Message: out.msg,
	})
}

// Logout clears the visitor's storage record
// GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.users.Clear(c.Request.Context(), visitorID(c)); err != nil {
		log.Error().Err(err).Msg("❌ Failed to clear visitor storage")
		renderError(c, http.StatusInternalServerError, "Logout failed", "Please try again.")
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// APILogin handles JSON logins
// POST /api/v1/login
func (h *AuthHandler) APILogin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	out := h.login(c, req)
	if out.errors != nil {
		c.JSON(out.status, gin.H{
			"code":   out.status,
			"error":  out.errors.Error(),
			"fields": out.errors,
		})
		return
	}

	c.JSON(out.status, model.LoginResponse{
		Success: out.user != nil,
		User:    out.user,
		Message: out.msg,
	})
}

// APILogout clears the visitor's storage record
// POST /api/v1/logout
func (h *AuthHandler) APILogout(c *gin.Context) {
	if err := h.users.Clear(c.Request.Context(), visitorID(c)); err != nil {
		log.Error().Err(err).Msg("❌ Failed to clear visitor storage")
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code:  500,
			Error: "logout failed",
		})
		return
	}
	c.JSON(http.StatusOK, model.APIResponse{
		Code:    200,
		Message: "logged out",
	})
}

// GetSession returns the visitor's stored user
// GET /api/v1/session
func (h *AuthHandler) GetSession(c *gin.Context) {
	s := session.From(c)
	c.JSON(http.StatusOK, gin.H{
		"code":      200,
		"logged_in": s.LoggedIn(),
		"user":      s.User,
	})
}
