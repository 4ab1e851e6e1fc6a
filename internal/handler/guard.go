package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ryeonng/class-jpa-blog-v2/internal/middleware"
	"github.com/ryeonng/class-jpa-blog-v2/internal/models"
	"github.com/ryeonng/class-jpa-blog-v2/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// 以重定向表达的控制信号
const (
	loginFormPath = "/login-form"
	notFoundPath  = "/error-404"
	forbiddenPath = "/error-403"
)

// requireLogin 认证检查：没有会话用户就重定向到登录页。
// 返回 false 时 handler 直接结束，重定向已经写入响应。
func requireLogin(c *gin.Context) (*models.User, bool) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.Redirect(http.StatusFound, loginFormPath)
		return nil, false
	}
	return user, true
}

// requireOwner 对帖子的变更操作做三步检查：
// 认证 → 存在 → 归属。顺序不能调换，未登录的请求
// 不应借 404/403 的差别得知某个 id 是否存在。
func requireOwner(c *gin.Context, boards *repository.BoardRepository, id uint) (*models.User, *models.Board, bool) {
	user, ok := requireLogin(c)
	if !ok {
		return nil, nil, false
	}

	board, err := boards.FindByID(id)
	if err != nil {
		if !errors.Is(err, repository.ErrBoardNotFound) {
			log.Error().Err(err).Uint("board_id", id).Msg("find board")
		}
		c.Redirect(http.StatusFound, notFoundPath)
		return nil, nil, false
	}

	if board.UserID != user.ID {
		c.Redirect(http.StatusFound, forbiddenPath)
		return nil, nil, false
	}

	return user, board, true
}

// parseID 解析路径里的 {id}。非法 id 一律按不存在处理。
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.Redirect(http.StatusFound, notFoundPath)
		return 0, false
	}
	return uint(id), true
}
