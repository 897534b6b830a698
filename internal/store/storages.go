package store

import "github.com/hirepath/hirepath-server/internal/logger"

type Storages struct {
	UserRepository        UserRepository
	ApplicationRepository ApplicationRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:        NewUserRepository(db, log),
		ApplicationRepository: NewApplicationRepository(db, log),
	}
}
