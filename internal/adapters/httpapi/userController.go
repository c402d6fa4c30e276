package httpapi

import (
	"errors"
	"net/http"

	"nodebird/internal/adapters/httpapi/middleware"
	"nodebird/internal/core/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserController struct {
	uc            UserUseCase
	gate          AccessGate
	logger        *zap.Logger
	secureCookies bool
}

func NewUserController(uc UserUseCase, gate AccessGate, logger *zap.Logger, secureCookies bool) *UserController {
	return &UserController{uc: uc, gate: gate, logger: logger, secureCookies: secureCookies}
}

func (ctl *UserController) RegisterUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Nickname string `json:"nickname" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	u, err := ctl.uc.RegisterUser(c.Request.Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrConstraint) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// LoginUser opens a server-side session (cookie) and also returns a bearer
// token; either one authenticates later requests.
func (ctl *UserController) LoginUser(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	res, err := ctl.uc.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}

	sid, err := ctl.gate.OpenSession(c.Request.Context(), res.User.ID)
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sid, int(ctl.gate.SessionTTL().Seconds()), "/", "", ctl.secureCookies, true)
	c.JSON(http.StatusOK, res)
}

func (ctl *UserController) LogoutUser(c *gin.Context) {
	if sid, err := c.Cookie(middleware.SessionCookie); err == nil {
		if err := ctl.gate.CloseSession(c.Request.Context(), sid); err != nil {
			writeError(c, ctl.logger, err, http.StatusNotFound)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", ctl.secureCookies, true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Me returns the caller, or null for anonymous callers.
func (ctl *UserController) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusOK, nil)
		return
	}
	u, err := ctl.uc.GetUser(c.Request.Context(), userID)
	if errors.Is(err, errs.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(c, ctl.logger, err, http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, u)
}
