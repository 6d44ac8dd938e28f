// Package main — Repository katmanı başlatma.
package main

import (
	"database/sql"

	"github.com/akinalp/mblog/repository"
)

// Repositories, tüm repository instance'larını tutan container.
type Repositories struct {
	User       repository.UserRepository
	Blog       repository.BlogRepository
	AtRelation repository.AtRelationRepository
}

// initRepositories, sql.DB bir connection pool'dur; tüm repo'lar paylaşır.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		User:       repository.NewSQLiteUserRepo(conn),
		Blog:       repository.NewSQLiteBlogRepo(conn),
		AtRelation: repository.NewSQLiteAtRelationRepo(conn),
	}
}
