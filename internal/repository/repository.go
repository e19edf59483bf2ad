package repository

import "errors"

var ErrNotFound = errors.New("запись не найдена")
var ErrUsernameTaken = errors.New("имя пользователя занято")

// Scope ограничивает каждую операцию чтения и записи строками одного
// владельца. Репозиторий никогда не ищет ресурс по одному только id:
// id чужой строки для вызывающего неотличим от несуществующего.
type Scope struct {
	UserID int64
}
