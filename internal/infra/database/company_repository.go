package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xavierca1/contafacil-billing/internal/entity"
)

var ErrCNPJAlreadyExists = errors.New("cnpj já cadastrado")

type CompanyRepository struct {
	DB *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{DB: db}
}

func (r *CompanyRepository) Create(ctx context.Context, c *entity.Company) error {
	query := `
		INSERT INTO companies (
			id, razao_social, cnpj, email, telefone,
			cep, endereco, cidade, estado,
			responsavel_financeiro_nome, responsavel_financeiro_email,
			responsavel_financeiro_telefone, responsavel_financeiro_whatsapp,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.DB.ExecContext(ctx, query,
		c.ID,
		c.RazaoSocial,
		c.CNPJ,
		c.Email,
		c.Telefone,
		c.CEP,
		c.Endereco,
		c.Cidade,
		c.Estado,
		c.ResponsavelFinanceiroNome,
		c.ResponsavelFinanceiroEmail,
		c.ResponsavelFinanceiroTelefone,
		c.ResponsavelFinanceiroWhatsapp,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrCNPJAlreadyExists
		}
		return fmt.Errorf("erro ao criar empresa: %w", err)
	}

	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `
		SELECT
			id, razao_social, cnpj, COALESCE(email, ''), COALESCE(telefone, ''),
			COALESCE(cep, ''), COALESCE(endereco, ''), COALESCE(cidade, ''), COALESCE(estado, ''),
			COALESCE(responsavel_financeiro_nome, ''), COALESCE(responsavel_financeiro_email, ''),
			COALESCE(responsavel_financeiro_telefone, ''), COALESCE(responsavel_financeiro_whatsapp, ''),
			created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var c entity.Company
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&c.ID,
		&c.RazaoSocial,
		&c.CNPJ,
		&c.Email,
		&c.Telefone,
		&c.CEP,
		&c.Endereco,
		&c.Cidade,
		&c.Estado,
		&c.ResponsavelFinanceiroNome,
		&c.ResponsavelFinanceiroEmail,
		&c.ResponsavelFinanceiroTelefone,
		&c.ResponsavelFinanceiroWhatsapp,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrCompanyNotFound
		}
		return nil, fmt.Errorf("erro ao buscar empresa: %w", err)
	}

	return &c, nil
}
