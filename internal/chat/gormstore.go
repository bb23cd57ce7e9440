package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/raylincc/codechat/internal/common"
	"gorm.io/gorm"
)

// sessionRow is the persisted shape. Messages are a JSON blob because the
// store replaces the whole sequence on update and never queries into it.
type sessionRow struct {
	ID           string `gorm:"primaryKey;size:26"` // ULID length
	Title        string `gorm:"type:varchar(255);not null"`
	Messages     string `gorm:"type:text;not null"`
	MessageCount int    `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time `gorm:"index"`
}

func (sessionRow) TableName() string { return "chat_sessions" }

// GormStore is the sqlite-backed Store. With the default in-memory DSN it
// has the same lifetime as MemStore; a file DSN makes it survive restarts.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&sessionRow{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) rowToSession(row *sessionRow) (*Session, error) {
	var msgs []Message
	if err := json.Unmarshal([]byte(row.Messages), &msgs); err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []Message{}
	}
	return &Session{
		ID:        row.ID,
		Title:     row.Title,
		Messages:  msgs,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}, nil
}

func (g *GormStore) List(ctx context.Context) ([]SessionSummary, error) {
	var rows []sessionRow
	if err := g.db.WithContext(ctx).
		Select("id", "title", "message_count", "created_at", "updated_at").
		Order("updated_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]SessionSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, SessionSummary{
			ID:           r.ID,
			Title:        r.Title,
			CreatedAt:    r.CreatedAt,
			UpdatedAt:    r.UpdatedAt,
			MessageCount: r.MessageCount,
		})
	}
	return out, nil
}

func (g *GormStore) Get(ctx context.Context, id string) (*Session, error) {
	var row sessionRow
	if err := g.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return g.rowToSession(&row)
}

func (g *GormStore) Create(ctx context.Context, in CreateSession) (*Session, error) {
	id, err := common.NewULID()
	if err != nil {
		return nil, err
	}

	title := in.Title
	if title == "" {
		title = DefaultTitle
	}
	msgs := in.Messages
	if msgs == nil {
		msgs = []Message{}
	}
	blob, err := json.Marshal(msgs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	row := sessionRow{
		ID:           id,
		Title:        title,
		Messages:     string(blob),
		MessageCount: len(msgs),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return g.rowToSession(&row)
}

func (g *GormStore) Update(ctx context.Context, id string, patch SessionPatch) (*Session, error) {
	var row sessionRow
	if err := g.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if patch.Title != nil {
		row.Title = *patch.Title
	}
	if patch.Messages != nil {
		blob, err := json.Marshal(*patch.Messages)
		if err != nil {
			return nil, err
		}
		row.Messages = string(blob)
		row.MessageCount = len(*patch.Messages)
	}
	row.UpdatedAt = time.Now()

	if err := g.db.WithContext(ctx).Save(&row).Error; err != nil {
		return nil, err
	}
	return g.rowToSession(&row)
}

func (g *GormStore) Delete(ctx context.Context, id string) (bool, error) {
	res := g.db.WithContext(ctx).Delete(&sessionRow{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
