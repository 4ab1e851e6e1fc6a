package repository

import (
	"errors"
	"fmt"

	"github.com/ryeonng/class-jpa-blog-v2/internal/models"

	"gorm.io/gorm"
)

// ErrBoardNotFound 帖子不存在
var ErrBoardNotFound = errors.New("board not found")

// BoardRepository 负责帖子的持久化
type BoardRepository struct {
	DB *gorm.DB
}

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{DB: db}
}

// Save 保存新帖子，UserID 由调用方从会话用户填入
func (r *BoardRepository) Save(board *models.Board) error {
	if err := r.DB.Create(board).Error; err != nil {
		return fmt.Errorf("create board: %w", err)
	}
	return nil
}

// FindByID 按主键查询帖子
func (r *BoardRepository) FindByID(id uint) (*models.Board, error) {
	var board models.Board
	if err := r.DB.First(&board, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board: %w", err)
	}
	return &board, nil
}

// FindByIDJoinUser 同 FindByID，但一次查询带出作者信息，
// 渲染详情页时省掉第二次查询
func (r *BoardRepository) FindByIDJoinUser(id uint) (*models.Board, error) {
	var board models.Board
	if err := r.DB.Preload("User").First(&board, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBoardNotFound
		}
		return nil, fmt.Errorf("find board with user: %w", err)
	}
	return &board, nil
}

// FindAll 按主键顺序返回全部帖子
func (r *BoardRepository) FindAll() ([]models.Board, error) {
	var boards []models.Board
	if err := r.DB.Order("id ASC").Find(&boards).Error; err != nil {
		return nil, fmt.Errorf("find boards: %w", err)
	}
	return boards, nil
}

// UpdateByID 修改标题和内容。调用方已确认该行存在。
func (r *BoardRepository) UpdateByID(id uint, title, content string) error {
	if err := r.DB.Model(&models.Board{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"title": title, "content": content}).Error; err != nil {
		return fmt.Errorf("update board: %w", err)
	}
	return nil
}

// DeleteByID 删除帖子。id 不存在时为空操作。
func (r *BoardRepository) DeleteByID(id uint) error {
	if err := r.DB.Delete(&models.Board{}, id).Error; err != nil {
		return fmt.Errorf("delete board: %w", err)
	}
	return nil
}
