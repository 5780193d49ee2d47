package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrCompanyNotFound = errors.New("empresa não encontrada")

// Company é o tenant: a empresa cliente do escritório de contabilidade.
// Todas as entidades de cobrança pertencem a uma empresa e caem junto com ela.
type Company struct {
	ID          string `json:"id"`
	RazaoSocial string `json:"razao_social"`
	CNPJ        string `json:"cnpj"`
	Email       string `json:"email"`
	Telefone    string `json:"telefone"`

	CEP      string `json:"cep"`
	Endereco string `json:"endereco"`
	Cidade   string `json:"cidade"`
	Estado   string `json:"estado"`

	// Responsável financeiro: quem recebe cobranças e lembretes.
	ResponsavelFinanceiroNome     string `json:"responsavel_financeiro_nome"`
	ResponsavelFinanceiroEmail    string `json:"responsavel_financeiro_email"`
	ResponsavelFinanceiroTelefone string `json:"responsavel_financeiro_telefone"`
	ResponsavelFinanceiroWhatsapp string `json:"responsavel_financeiro_whatsapp"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewCompany(razaoSocial, cnpj, email string) (*Company, error) {
	if razaoSocial == "" {
		return nil, errors.New("razão social é obrigatória")
	}
	if cnpj == "" {
		return nil, errors.New("cnpj é obrigatório")
	}

	now := time.Now()
	return &Company{
		ID:          uuid.New().String(),
		RazaoSocial: razaoSocial,
		CNPJ:        cnpj,
		Email:       email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// BillingEmail prefere o responsável financeiro, cai para o email da empresa.
func (c *Company) BillingEmail() string {
	if c.ResponsavelFinanceiroEmail != "" {
		return c.ResponsavelFinanceiroEmail
	}
	return c.Email
}

func (c *Company) BillingName() string {
	if c.ResponsavelFinanceiroNome != "" {
		return c.ResponsavelFinanceiroNome
	}
	return c.RazaoSocial
}

func (c *Company) BillingPhone() string {
	if c.ResponsavelFinanceiroTelefone != "" {
		return c.ResponsavelFinanceiroTelefone
	}
	return c.Telefone
}

func (c *Company) BillingWhatsapp() string {
	if c.ResponsavelFinanceiroWhatsapp != "" {
		return c.ResponsavelFinanceiroWhatsapp
	}
	return c.Telefone
}

type CompanyRepositoryInterface interface {
	FindByID(ctx context.Context, id string) (*Company, error)
	Create(ctx context.Context, c *Company) error
}

// MasterUser recebe os avisos administrativos (cobrança paga/vencida).
type MasterUser struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

type UserRepositoryInterface interface {
	FindMasters(ctx context.Context) ([]*MasterUser, error)
}
