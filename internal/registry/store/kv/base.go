package kv

import "context"

type base struct {
	store Store
}

func (s base) view(ctx context.Context, op string, fn func(Tx) error) error {
	return translate(op, s.store.View(ctx, fn))
}

func (s base) update(ctx context.Context, op string, fn func(Tx) error) error {
	return translate(op, s.store.Update(ctx, fn))
}

// buckets opens several buckets of one transaction.
func buckets(tx Tx, names ...[]byte) ([]Bucket, error) {
	out := make([]Bucket, len(names))
	for i, name := range names {
		b, err := tx.Bucket(name)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func groupKey(storageID string) []byte {
	return []byte(storageID)
}

// childPrefix selects the service information and redirects of one group.
func childPrefix(storageID string) []byte {
	return []byte(storageID + "\x00")
}
