// Пакет storage — абстракция объектного хранилища поверх DFS.
//
// ObjectStore скрывает топологию бэкенда от Content Service:
// логический ключ отображается в путь хранения, tier — в replication factor.
// Гарантия бэкенда (black box): успешный ack означает, что payload durable
// минимум на replicationFactor узлах, чтение eventually consistent.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Tier — класс хранения объекта.
// Определяет replication factor и целевой набор узлов на стороне DFS.
type Tier string

const (
	// TierHot — свежий, latency-чувствительный контент. Максимальная репликация.
	TierHot Tier = "hot"
	// TierWarm — контент со спадающей частотой доступа.
	TierWarm Tier = "warm"
	// TierCold — архивный контент. Минимальная репликация.
	TierCold Tier = "cold"
)

// Ошибки хранилища. Client ретраит транзиентные сбои локально и
// возвращает эти ошибки только после исчерпания бюджета попыток.
var (
	// ErrNotFound — ключ отсутствует в хранилище.
	ErrNotFound = errors.New("объект не найден в хранилище")
	// ErrUnavailable — бэкенд недоступен после всех попыток (путь чтения).
	ErrUnavailable = errors.New("хранилище недоступно")
	// ErrWriteFailed — запись не подтверждена после всех попыток.
	ErrWriteFailed = errors.New("запись в хранилище не выполнена")
)

// ObjectStore — операции над объектным хранилищем.
// Реализации: dfsclient.Client (HTTP к namenode), memstore.Store (in-memory).
type ObjectStore interface {
	// Put записывает payload по ключу с репликацией согласно tier.
	Put(ctx context.Context, key string, payload []byte, tier Tier) error
	// Get возвращает payload по ключу. ErrNotFound, если ключ отсутствует.
	Get(ctx context.Context, key string) ([]byte, error)
	// List возвращает ключи с указанным префиксом.
	List(ctx context.Context, prefix string) ([]string, error)
	// DeletePrefix удаляет все объекты с указанным префиксом,
	// возвращает количество удалённых. Используется административным путём.
	DeletePrefix(ctx context.Context, prefix string) (int, error)
}

// ReplicationPolicy — отображение tier → replication factor.
// Значения по умолчанию (3/2/1) — конфигурация, а не жёсткий контракт.
type ReplicationPolicy struct {
	Hot  int
	Warm int
	Cold int
}

// DefaultReplicationPolicy возвращает политику по умолчанию: hot=3, warm=2, cold=1.
func DefaultReplicationPolicy() ReplicationPolicy {
	return ReplicationPolicy{Hot: 3, Warm: 2, Cold: 1}
}

// Factor возвращает replication factor для tier. Минимум 1.
func (p ReplicationPolicy) Factor(tier Tier) int {
	var f int
	switch tier {
	case TierHot:
		f = p.Hot
	case TierWarm:
		f = p.Warm
	case TierCold:
		f = p.Cold
	default:
		f = p.Cold
	}
	if f < 1 {
		return 1
	}
	return f
}

// Validate проверяет, что все факторы ≥ 1.
func (p ReplicationPolicy) Validate() error {
	if p.Hot < 1 || p.Warm < 1 || p.Cold < 1 {
		return fmt.Errorf("replication factor должен быть >= 1: hot=%d warm=%d cold=%d", p.Hot, p.Warm, p.Cold)
	}
	return nil
}

// --- Схема ключей ---
//
// Посты:        posts/{postID}.json
// Комментарии:  comments/{postID}/{commentID}.json
//
// Комментарии лежат под префиксом поста, поэтому все комментарии
// одного поста читаются одним prefix listing.

// PostsPrefix — префикс всех постов.
const PostsPrefix = "posts/"

// PostKey возвращает ключ хранения поста.
func PostKey(postID string) string {
	return PostsPrefix + postID + ".json"
}

// CommentPrefix возвращает префикс всех комментариев поста.
func CommentPrefix(postID string) string {
	return "comments/" + postID + "/"
}

// CommentKey возвращает ключ хранения комментария.
func CommentKey(postID, commentID string) string {
	return CommentPrefix(postID) + commentID + ".json"
}
