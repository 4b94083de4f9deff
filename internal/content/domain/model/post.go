// Пакет model — доменные модели Content Service.
// Посты и комментарии неизменяемы после создания, удаление —
// только через административный путь (вне ядра системы).
package model

import "time"

// Post — пост пользователя.
// Хранится в DFS как JSON-объект по ключу posts/{id}.json.
type Post struct {
	// ID — UUID поста
	ID string `json:"id"`
	// Author — автор поста
	Author string `json:"author"`
	// Content — текст поста
	Content string `json:"content"`
	// CreatedAt — время создания (UTC)
	CreatedAt time.Time `json:"created_at"`
}

// Comment — комментарий к посту.
// Хранится в DFS по ключу comments/{post_id}/{id}.json,
// поэтому все комментарии поста читаются одним prefix listing.
type Comment struct {
	// ID — UUID комментария
	ID string `json:"id"`
	// PostID — UUID поста, к которому относится комментарий.
	// Существование поста проверяется один раз — при создании комментария.
	PostID string `json:"post_id"`
	// Author — автор комментария
	Author string `json:"author"`
	// Content — текст комментария
	Content string `json:"content"`
	// CreatedAt — время создания (UTC)
	CreatedAt time.Time `json:"created_at"`
}

// PostWithComments — пост вместе со своими комментариями.
// Формируется на лету при listing — между вызовами ничего не кэшируется.
type PostWithComments struct {
	Post
	Comments []Comment `json:"comments"`
}
