package models

import (
	"time"

	"github.com/yaduk2001/selling-sub001/internal/domain"
)

// BlockRequest запрос на создание или изменение блокировки. Время в RFC 3339 с любым смещением,
// хранится в UTC.
type BlockRequest struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Label   string    `json:"label,omitempty"`
	Away    bool      `json:"away,omitempty"`
}

// ToDomain конвертирует запрос в domain модель
func (r *BlockRequest) ToDomain() *domain.AdminBlock {
	return &domain.AdminBlock{
		StartAt: r.StartAt,
		EndAt:   r.EndAt,
		Label:   r.Label,
		Away:    r.Away,
	}
}

// BlockResponse блокировка в UTC
type BlockResponse struct {
	ID        int64     `json:"id"`
	StartAt   time.Time `json:"startAt"`
	EndAt     time.Time `json:"endAt"`
	Label     string    `json:"label"`
	Away      bool      `json:"away"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

func FromDomainBlock(b *domain.AdminBlock) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:        b.ID,
		StartAt:   b.StartAt.UTC(),
		EndAt:     b.EndAt.UTC(),
		Label:     b.Label,
		Away:      b.Away,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func FromDomainBlockList(blocks []*domain.AdminBlock) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(blocks))}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(b))
	}
	return resp
}
