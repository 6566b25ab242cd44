// Package storage содержит общие ошибки слоя хранения.
package storage

import "errors"

var (
	// ErrNotFound запись не найдена или принадлежит другому аккаунту.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists запись с таким ключом уже есть.
	ErrAlreadyExists = errors.New("already exists")
)
