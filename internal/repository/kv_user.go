package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/storage"
)

// KVUserRepo implements UserRepo over a storage.KV.
type KVUserRepo struct {
	kv storage.KV
}

func NewKVUserRepo(kv storage.KV) *KVUserRepo {
	return &KVUserRepo{kv: kv}
}

func (r *KVUserRepo) Load(ctx context.Context) (*domain.User, error) {
	var rec userRecord
	found, err := loadJSON(ctx, r.kv, KeyUser, &rec)
	if err != nil || !found {
		return nil, err
	}
	return rec.toDomain()
}

func (r *KVUserRepo) Save(ctx context.Context, u *domain.User) error {
	return saveJSON(ctx, r.kv, KeyUser, userToRecord(u))
}

func (r *KVUserRepo) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, KeyUser); err != nil {
		return fmt.Errorf("clearing user: %w", err)
	}
	return nil
}
