package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/hubkit/internal/domain"
	"github.com/alexanderramin/hubkit/internal/storage"
)

// KVOrderRepo implements OrderRepo over a storage.KV.
type KVOrderRepo struct {
	kv storage.KV
}

func NewKVOrderRepo(kv storage.KV) *KVOrderRepo {
	return &KVOrderRepo{kv: kv}
}

func (r *KVOrderRepo) List(ctx context.Context) ([]domain.Order, error) {
	var recs []orderRecord
	if _, err := loadJSON(ctx, r.kv, KeyOrders, &recs); err != nil {
		return nil, err
	}
	orders := make([]domain.Order, 0, len(recs))
	for _, rec := range recs {
		o, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decoding orders: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (r *KVOrderRepo) SaveWithCart(ctx context.Context, orders []domain.Order, cart []domain.CartItem) error {
	recs := make([]orderRecord, 0, len(orders))
	for _, o := range orders {
		recs = append(recs, orderToRecord(o))
	}
	ordersData, err := encodeJSON(KeyOrders, recs)
	if err != nil {
		return err
	}
	cartData, err := encodeJSON(KeyCart, cartToRecords(cart))
	if err != nil {
		return err
	}
	if err := r.kv.SetMulti(ctx, map[string][]byte{KeyOrders: ordersData, KeyCart: cartData}); err != nil {
		return fmt.Errorf("saving order: %w", err)
	}
	return nil
}
