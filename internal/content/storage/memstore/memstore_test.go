package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/bigkaa/gofeedstore/internal/content/storage"
)

// TestStore_PutGet проверяет запись и чтение объекта.
func TestStore_PutGet(t *testing.T) {
	s := New(storage.DefaultReplicationPolicy())
	ctx := context.Background()

	if err := s.Put(ctx, "posts/p1.json", []byte(`{"id":"p1"}`), storage.TierHot); err != nil {
		t.Fatalf("Put ошибка: %v", err)
	}

	payload, err := s.Get(ctx, "posts/p1.json")
	if err != nil {
		t.Fatalf("Get ошибка: %v", err)
	}
	if string(payload) != `{"id":"p1"}` {
		t.Errorf("payload = %q, ожидался %q", payload, `{"id":"p1"}`)
	}
}

// TestStore_GetNotFound проверяет ErrNotFound для отсутствующего ключа.
func TestStore_GetNotFound(t *testing.T) {
	s := New(storage.DefaultReplicationPolicy())

	_, err := s.Get(context.Background(), "posts/missing.json")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("err = %v, ожидался storage.ErrNotFound", err)
	}
}

// TestStore_ListPrefix проверяет prefix listing и сортировку ключей.
func TestStore_ListPrefix(t *testing.T) {
	s := New(storage.DefaultReplicationPolicy())
	ctx := context.Background()

	_ = s.Put(ctx, "comments/p1/c2.json", []byte("b"), storage.TierHot)
	_ = s.Put(ctx, "comments/p1/c1.json", []byte("a"), storage.TierHot)
	_ = s.Put(ctx, "comments/p2/c3.json", []byte("c"), storage.TierHot)
	_ = s.Put(ctx, "posts/p1.json", []byte("p"), storage.TierHot)

	keys, err := s.List(ctx, "comments/p1/")
	if err != nil {
		t.Fatalf("List ошибка: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("len(keys) = %d, ожидался 2", len(keys))
	}
	if keys[0] != "comments/p1/c1.json" || keys[1] != "comments/p1/c2.json" {
		t.Errorf("keys = %v, ожидался отсортированный список комментариев p1", keys)
	}
}

// TestStore_DeletePrefix проверяет удаление по префиксу.
func TestStore_DeletePrefix(t *testing.T) {
	s := New(storage.DefaultReplicationPolicy())
	ctx := context.Background()

	_ = s.Put(ctx, "comments/p1/c1.json", []byte("a"), storage.TierHot)
	_ = s.Put(ctx, "comments/p1/c2.json", []byte("b"), storage.TierHot)
	_ = s.Put(ctx, "posts/p1.json", []byte("p"), storage.TierHot)

	deleted, err := s.DeletePrefix(ctx, "comments/p1/")
	if err != nil {
		t.Fatalf("DeletePrefix ошибка: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, ожидался 2", deleted)
	}
	if s.Count() != 1 {
		t.Errorf("Count = %d, ожидался 1", s.Count())
	}
}

// TestStore_ReplicationByTier проверяет, что replication factor
// назначается согласно политике tier.
func TestStore_ReplicationByTier(t *testing.T) {
	s := New(storage.ReplicationPolicy{Hot: 3, Warm: 2, Cold: 1})
	ctx := context.Background()

	_ = s.Put(ctx, "hot", []byte("h"), storage.TierHot)
	_ = s.Put(ctx, "warm", []byte("w"), storage.TierWarm)
	_ = s.Put(ctx, "cold", []byte("c"), storage.TierCold)

	cases := []struct {
		key  string
		want int
	}{
		{"hot", 3},
		{"warm", 2},
		{"cold", 1},
	}
	for _, c := range cases {
		got, ok := s.Replication(c.key)
		if !ok {
			t.Fatalf("объект %q не найден", c.key)
		}
		if got != c.want {
			t.Errorf("Replication(%q) = %d, ожидался %d", c.key, got, c.want)
		}
	}
}

// TestStore_PutCopiesPayload проверяет, что буфер payload копируется.
func TestStore_PutCopiesPayload(t *testing.T) {
	s := New(storage.DefaultReplicationPolicy())
	ctx := context.Background()

	buf := []byte("original")
	_ = s.Put(ctx, "k", buf, storage.TierHot)
	buf[0] = 'X'

	payload, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get ошибка: %v", err)
	}
	if string(payload) != "original" {
		t.Errorf("payload = %q, мутация внешнего буфера не должна влиять на хранилище", payload)
	}
}
