// Command migrate roda as migrações do banco via goose.
//
// Uso:
//
//	go run ./cmd/migrate up          # Aplica todas as migrações pendentes
//	go run ./cmd/migrate down        # Desfaz a última migração
//	go run ./cmd/migrate status      # Mostra o estado das migrações
//	go run ./cmd/migrate version     # Mostra a versão atual do schema
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

const migrationsDir = "migrations"

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Uso: migrate <comando>")
		fmt.Println("Comandos: up, down, status, version, redo, up-to <versão>, down-to <versão>")
		os.Exit(1)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL é obrigatória")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("Falha ao abrir o banco: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.Ping(); err != nil {
		log.Fatalf("Falha ao conectar no banco: %v", err)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if err := goose.RunContext(context.Background(), command, db, migrationsDir, args...); err != nil {
		log.Fatalf("Migração %s falhou: %v", command, err)
	}
}
