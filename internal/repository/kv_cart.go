package repository

import (
	"context"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/storage"
)

// KVCartRepo implements CartRepo over a storage.KV.
type KVCartRepo struct {
	kv storage.KV
}

func NewKVCartRepo(kv storage.KV) *KVCartRepo {
	return &KVCartRepo{kv: kv}
}

func (r *KVCartRepo) Load(ctx context.Context) ([]domain.CartItem, error) {
	var recs []cartItemRecord
	if _, err := loadJSON(ctx, r.kv, KeyCart, &recs); err != nil {
		return nil, err
	}
	return cartFromRecords(recs), nil
}

func (r *KVCartRepo) Save(ctx context.Context, items []domain.CartItem) error {
	return saveJSON(ctx, r.kv, KeyCart, cartToRecords(items))
}
