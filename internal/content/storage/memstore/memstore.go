// Пакет memstore — in-memory реализация storage.ObjectStore.
//
// Используется в тестах как подменяемый двойник DFS и в dev-режиме
// (CS_STORAGE_MODE=memory), когда бэкенд недоступен или не нужен.
// Репликация не выполняется, но заявленный factor сохраняется —
// тесты проверяют политику tier → replication по нему.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/bigkaa/gofeedstore/internal/content/storage"
)

// object — сохранённый объект вместе с параметрами записи.
type object struct {
	payload     []byte
	tier        storage.Tier
	replication int
}

// Store — in-memory объектное хранилище.
// Потокобезопасно: конкурентные обработчики запросов пишут без координации.
type Store struct {
	policy storage.ReplicationPolicy

	mu      sync.RWMutex
	objects map[string]object
}

// New создаёт пустое in-memory хранилище с указанной политикой репликации.
func New(policy storage.ReplicationPolicy) *Store {
	return &Store{
		policy:  policy,
		objects: make(map[string]object),
	}
}

// Put сохраняет payload по ключу. Копирует payload — вызывающий код
// может переиспользовать буфер.
func (s *Store) Put(_ context.Context, key string, payload []byte, tier storage.Tier) error {
	buf := make([]byte, len(payload))
	copy(buf, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = object{
		payload:     buf,
		tier:        tier,
		replication: s.policy.Factor(tier),
	}
	return nil
}

// Get возвращает payload по ключу или storage.ErrNotFound.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	buf := make([]byte, len(obj.payload))
	copy(buf, obj.payload)
	return buf, nil
}

// List возвращает отсортированный список ключей с указанным префиксом.
func (s *Store) List(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0)
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// DeletePrefix удаляет все объекты с указанным префиксом.
func (s *Store) DeletePrefix(_ context.Context, prefix string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for key := range s.objects {
		if strings.HasPrefix(key, prefix) {
			delete(s.objects, key)
			deleted++
		}
	}
	return deleted, nil
}

// Replication возвращает replication factor, с которым был записан объект.
// Используется в тестах политики tier.
func (s *Store) Replication(key string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[key]
	if !ok {
		return 0, false
	}
	return obj.replication, true
}

// Count возвращает количество объектов в хранилище.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
