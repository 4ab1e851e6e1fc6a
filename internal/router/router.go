package router

import (
	"net/http"

	"github.com/ryeonng/class-jpa-blog-v2/internal/config"
	"github.com/ryeonng/class-jpa-blog-v2/internal/handler"
	"github.com/ryeonng/class-jpa-blog-v2/internal/middleware"
	"github.com/ryeonng/class-jpa-blog-v2/internal/repository"
	"github.com/ryeonng/class-jpa-blog-v2/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures Gin engine, templates and all routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()

	store := session.NewStore(db, session.TTLFromHours(cfg.Session.TTLHours))
	r.Use(
		gin.Recovery(),
		middleware.RequestLog(),
		middleware.Session(store, cfg.Session.CookieName),
	)

	r.LoadHTMLGlob(cfg.Server.Templates)

	boardHandler := handler.NewBoardHandler(repository.NewBoardRepository(db))
	userHandler := handler.NewUserHandler(repository.NewUserRepository(db), store, cfg.Session.CookieName)

	// 帖子
	r.GET("/", boardHandler.Index)
	r.GET("/board/save-form", boardHandler.SaveForm)
	r.POST("/board/save", boardHandler.Save)
	r.GET("/board/:id", boardHandler.Detail)
	r.GET("/board/:id/update-form", boardHandler.UpdateForm)
	r.POST("/board/:id/update", boardHandler.Update)
	r.POST("/board/:id/delete", boardHandler.Delete)

	// 用户
	r.GET("/join-form", userHandler.JoinForm)
	r.POST("/join", userHandler.Join)
	r.GET("/login-form", userHandler.LoginForm)
	r.POST("/login", userHandler.Login)
	r.GET("/logout", userHandler.Logout)
	r.GET("/user/update-form", userHandler.UpdateForm)
	r.POST("/user/update", userHandler.Update)

	// 错误页
	r.GET("/error-404", func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error-404.html", nil)
	})
	r.GET("/error-403", func(c *gin.Context) {
		c.HTML(http.StatusForbidden, "error-403.html", nil)
	})

	return r
}
