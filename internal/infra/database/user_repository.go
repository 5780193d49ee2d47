package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// FindMasters lista quem recebe os avisos administrativos.
func (r *UserRepository) FindMasters(ctx context.Context) ([]*entity.MasterUser, error) {
	query := `SELECT id, nome, email FROM users WHERE role = 'master' ORDER BY nome`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar usuários master: %w", err)
	}
	defer rows.Close()

	var masters []*entity.MasterUser
	for rows.Next() {
		var u entity.MasterUser
		if err := rows.Scan(&u.ID, &u.Nome, &u.Email); err != nil {
			return nil, fmt.Errorf("erro ao ler usuário master: %w", err)
		}
		masters = append(masters, &u)
	}

	return masters, rows.Err()
}
