package auth

import (
	"net/http"
	"time"

	"github.com/kartikey1112/hrms-dashboard/internal/shared/apperror"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/request"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/response"
	"github.com/kartikey1112/hrms-dashboard/internal/shared/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const refreshMaxAge = 7 * 24 * time.Hour

type Handler struct {
	service    Service
	cookieName string
	secure     bool
	logger     *zap.Logger
}

func NewHandler(s Service, cookieName string, secure bool, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	if cookieName == "" {
		cookieName = session.DefaultCookieName
	}
	return &Handler{service: s, cookieName: cookieName, secure: secure, logger: l}
}

func (h *Handler) refreshCookieName() string {
	return h.cookieName + "_refresh"
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("auth request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) isWeb(c *gin.Context) bool {
	return request.IsWebClient(request.ResolveClientType(c.GetHeader("X-Client-Type"), c.GetHeader("User-Agent")))
}

func (h *Handler) setSessionCookies(c *gin.Context, s Session) {
	maxAge := int(time.Until(s.ExpiresAt).Seconds())
	if maxAge <= 0 {
		maxAge = int(time.Hour.Seconds())
	}
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.cookieName,
		Value:    s.AccessToken,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     h.refreshCookieName(),
		Value:    s.RefreshToken,
		Path:     "/",
		MaxAge:   int(refreshMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookies(c *gin.Context) {
	for _, name := range []string{h.cookieName, h.refreshCookieName()} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   h.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	sess, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.isWeb(c) {
		h.setSessionCookies(c, sess)
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

func (h *Handler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	res, err := h.service.SignUp(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	out := SignUpResponse{User: toProfile(res.User)}
	if res.Session == nil {
		out.ConfirmationRequired = true
		out.Message = ConfirmationMessage
	} else {
		sr := toSessionResponse(*res.Session)
		out.Session = &sr
		if h.isWeb(c) {
			h.setSessionCookies(c, *res.Session)
		}
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) Refresh(c *gin.Context) {
	isWeb := h.isWeb(c)

	var refreshToken string
	if isWeb {
		if v, err := c.Cookie(h.refreshCookieName()); err == nil {
			refreshToken = v
		}
	}
	if refreshToken == "" {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}
		refreshToken = req.RefreshToken
	}

	sess, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if isWeb {
		h.setSessionCookies(c, sess)
	}
	response.Success(c, http.StatusOK, toSessionResponse(sess))
}

// SignOut always ends with a redirect to the login page.
func (h *Handler) SignOut(c *gin.Context) {
	token := session.TokenFromRequest(c.Request, h.cookieName)
	h.service.SignOut(c.Request.Context(), token)
	h.clearSessionCookies(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) Me(c *gin.Context) {
	u, ok := session.UserFrom(c.Request.Context())
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Not signed in", nil)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	token := session.TokenFromRequest(c.Request, h.cookieName)
	u, err := h.service.UpdateProfile(c.Request.Context(), token, req.Name)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toProfile(u))
}
