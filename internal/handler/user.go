package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ryeonng/class-jpa-blog-v2/internal/models"
	"github.com/ryeonng/class-jpa-blog-v2/internal/repository"
	"github.com/ryeonng/class-jpa-blog-v2/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// UserHandler 负责注册、登录、登出和资料修改
type UserHandler struct {
	Users      *repository.UserRepository
	Sessions   *session.Store
	CookieName string
}

func NewUserHandler(users *repository.UserRepository, sessions *session.Store, cookieName string) *UserHandler {
	return &UserHandler{
		Users:      users,
		Sessions:   sessions,
		CookieName: cookieName,
	}
}

// ---------- 请求结构 ----------

type joinReq struct {
	Username string `form:"username"`
	Password string `form:"password"`
	Email    string `form:"email"`
}

type loginReq struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type updateUserReq struct {
	Password string `form:"password"`
	Email    string `form:"email"`
}

// ---------- 注册 ----------

// JoinForm 注册页面
func (h *UserHandler) JoinForm(c *gin.Context) {
	c.HTML(http.StatusOK, "join-form.html", gin.H{
		"error": c.Request.URL.Query().Has("error"),
	})
}

// Join 注册新用户，用户名重复时带 error 标记回到注册页
func (h *UserHandler) Join(c *gin.Context) {
	var req joinReq
	_ = c.ShouldBind(&req)

	user := models.User{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	}
	if err := h.Users.Save(&user); err != nil {
		if !errors.Is(err, repository.ErrUsernameTaken) {
			log.Error().Err(err).Str("username", req.Username).Msg("save user")
		}
		c.Redirect(http.StatusFound, "/join-form?error")
		return
	}

	c.Redirect(http.StatusFound, loginFormPath)
}

// ---------- 登录 / 登出 ----------

// LoginForm 登录页面
func (h *UserHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login-form.html", gin.H{
		"error": c.Request.URL.Query().Has("error"),
	})
}

// Login 验证用户名密码，成功则建立会话并写 cookie。
// 任何失败都折叠为同一个 error 标记。
func (h *UserHandler) Login(c *gin.Context) {
	var req loginReq
	_ = c.ShouldBind(&req)

	user, err := h.Users.FindByUsernameAndPassword(req.Username, req.Password)
	if err != nil {
		if !errors.Is(err, repository.ErrLoginFailed) {
			log.Error().Err(err).Str("username", req.Username).Msg("login lookup")
		}
		c.Redirect(http.StatusFound, loginFormPath+"?error")
		return
	}

	sess, err := h.Sessions.Start(user.ID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", user.ID).Msg("start session")
		c.Redirect(http.StatusFound, loginFormPath+"?error")
		return
	}

	c.SetCookie(h.CookieName, sess.ID, 0, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// Logout 使整个会话失效并清掉 cookie
func (h *UserHandler) Logout(c *gin.Context) {
	if sid, err := c.Cookie(h.CookieName); err == nil {
		if err := h.Sessions.Invalidate(sid); err != nil {
			log.Error().Err(err).Msg("invalidate session")
		}
	}

	c.SetCookie(h.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

// ---------- 资料修改 ----------

// UpdateForm 资料修改页面，未登录时重定向到登录页
func (h *UserHandler) UpdateForm(c *gin.Context) {
	sessionUser, ok := requireLogin(c)
	if !ok {
		return
	}

	user, err := h.Users.FindByID(sessionUser.ID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", sessionUser.ID).Msg("find user")
		c.Redirect(http.StatusFound, "/")
		return
	}

	c.HTML(http.StatusOK, "user-update-form.html", gin.H{
		"user": user,
	})
}

// Update 修改自己的密码和邮箱。密码或邮箱为空白时不做任何修改，
// 静默回到首页。会话里的用户每次请求都从库里重新读，
// 修改后的资料下一个请求即可见。
func (h *UserHandler) Update(c *gin.Context) {
	sessionUser, ok := requireLogin(c)
	if !ok {
		return
	}

	var req updateUserReq
	_ = c.ShouldBind(&req)

	if strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.Email) == "" {
		c.Redirect(http.StatusFound, "/")
		return
	}

	if _, err := h.Users.UpdateByID(sessionUser.ID, req.Password, req.Email); err != nil {
		log.Error().Err(err).Uint("user_id", sessionUser.ID).Msg("update user")
		c.String(http.StatusInternalServerError, "server error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
