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

// BoardHandler 负责帖子相关页面和操作
type BoardHandler struct {
	Boards *repository.BoardRepository
}

func NewBoardHandler(boards *repository.BoardRepository) *BoardHandler {
	return &BoardHandler{Boards: boards}
}

// ---------- 请求结构 ----------

type saveBoardReq struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

type updateBoardReq struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// ---------- 列表 ----------

// Index 首页，按写入顺序列出全部帖子
func (h *BoardHandler) Index(c *gin.Context) {
	boards, err := h.Boards.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("list boards")
		c.String(http.StatusInternalServerError, "server error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"boards": boards,
		"user":   middleware.CurrentUser(c),
	})
}

// ---------- 详情 ----------

// Detail 帖子详情，一次查询带出作者
func (h *BoardHandler) Detail(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	board, err := h.Boards.FindByIDJoinUser(id)
	if err != nil {
		if !errors.Is(err, repository.ErrBoardNotFound) {
			log.Error().Err(err).Uint("board_id", id).Msg("find board")
		}
		c.Redirect(http.StatusFound, notFoundPath)
		return
	}

	user := middleware.CurrentUser(c)
	isOwner := user != nil && user.ID == board.UserID

	c.HTML(http.StatusOK, "board-detail.html", gin.H{
		"board":   board,
		"user":    user,
		"isOwner": isOwner,
	})
}

// ---------- 写帖子 ----------

// SaveForm 写帖子页面
func (h *BoardHandler) SaveForm(c *gin.Context) {
	c.HTML(http.StatusOK, "board-save-form.html", gin.H{
		"user": middleware.CurrentUser(c),
	})
}

// Save 保存新帖子，作者取自会话用户
func (h *BoardHandler) Save(c *gin.Context) {
	user, ok := requireLogin(c)
	if !ok {
		return
	}

	var req saveBoardReq
	_ = c.ShouldBind(&req)

	board := models.Board{
		Title:   req.Title,
		Content: req.Content,
		UserID:  user.ID,
	}
	if err := h.Boards.Save(&board); err != nil {
		log.Error().Err(err).Msg("save board")
		c.String(http.StatusInternalServerError, "server error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// ---------- 修改 ----------

// UpdateForm 修改页面，按原始行为不做认证和归属检查
func (h *BoardHandler) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	board, err := h.Boards.FindByID(id)
	if err != nil {
		if !errors.Is(err, repository.ErrBoardNotFound) {
			log.Error().Err(err).Uint("board_id", id).Msg("find board")
		}
		c.Redirect(http.StatusFound, notFoundPath)
		return
	}

	c.HTML(http.StatusOK, "board-update-form.html", gin.H{
		"board": board,
		"user":  middleware.CurrentUser(c),
	})
}

// Update 修改标题和内容，只允许作者本人
func (h *BoardHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	_, _, ok = requireOwner(c, h.Boards, id)
	if !ok {
		return
	}

	var req updateBoardReq
	_ = c.ShouldBind(&req)

	if err := h.Boards.UpdateByID(id, req.Title, req.Content); err != nil {
		log.Error().Err(err).Uint("board_id", id).Msg("update board")
		c.String(http.StatusInternalServerError, "server error")
		return
	}

	c.Redirect(http.StatusFound, "/board/"+strconv.Itoa(int(id)))
}

// ---------- 删除 ----------

// Delete 删除帖子，只允许作者本人
func (h *BoardHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	_, _, ok = requireOwner(c, h.Boards, id)
	if !ok {
		return
	}

	if err := h.Boards.DeleteByID(id); err != nil {
		log.Error().Err(err).Uint("board_id", id).Msg("delete board")
		c.String(http.StatusInternalServerError, "server error")
		return
	}

	c.Redirect(http.StatusFound, "/")
}
