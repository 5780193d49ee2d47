// Package config resolve a configuração uma única vez a partir do ambiente.
// Credenciais de gateway nunca são lidas ad-hoc no meio do código: quem
// precisa delas recebe o Config (ou o pedaço dele) injetado na construção.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Servidor
	Port   string
	AppURL string // usado nas back_urls do checkout

	// Banco
	DatabaseURL string

	// Mercado Pago
	MercadoPagoAccessToken string
	MercadoPagoBaseURL     string

	// SMTP
	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	// WhatsApp (Graph API)
	WhatsappAccessToken string
	WhatsappPhoneID     string

	// RabbitMQ
	AMQPUser string
	AMQPPass string
	AMQPHost string
	AMQPPort string

	// Workers
	BillingInterval    time.Duration // geração + lembretes
	ReaperInterval     time.Duration // limpeza de cobranças expiradas
	ChargeGraceWindow  time.Duration // idade máxima de PIX/cartão pending
	ReminderDaysBefore int           // lembrete N dias antes do vencimento
}

const (
	DefaultPort               = "8080"
	DefaultMercadoPagoBaseURL = "https://api.mercadopago.com"
	DefaultMailPort           = 587
	DefaultBillingInterval    = 24 * time.Hour
	DefaultReaperInterval     = 5 * time.Minute
	DefaultChargeGraceWindow  = 10 * time.Minute
	DefaultReminderDaysBefore = 5
)

// Load lê o .env (se existir) e monta o Config com defaults.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Port:   getEnv("PORT", DefaultPort),
		AppURL: getEnv("APP_URL", "http://localhost:"+getEnv("PORT", DefaultPort)),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
		MercadoPagoBaseURL:     getEnv("MERCADOPAGO_URL", DefaultMercadoPagoBaseURL),

		MailHost: os.Getenv("MAIL_HOST"),
		MailPort: getEnvInt("MAIL_PORT", DefaultMailPort),
		MailUser: os.Getenv("MAIL_USER"),
		MailPass: os.Getenv("MAIL_PASS"),
		MailFrom: getEnv("MAIL_FROM", "nao-responda@contafacil.com.br"),

		WhatsappAccessToken: os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		WhatsappPhoneID:     os.Getenv("WHATSAPP_PHONE_ID"),

		AMQPUser: getEnv("AMQP_USER", "guest"),
		AMQPPass: getEnv("AMQP_PASS", "guest"),
		AMQPHost: getEnv("AMQP_HOST", "localhost"),
		AMQPPort: getEnv("AMQP_PORT", "5672"),

		BillingInterval:    getEnvDuration("BILLING_INTERVAL", DefaultBillingInterval),
		ReaperInterval:     getEnvDuration("REAPER_INTERVAL", DefaultReaperInterval),
		ChargeGraceWindow:  getEnvDuration("CHARGE_GRACE_WINDOW", DefaultChargeGraceWindow),
		ReminderDaysBefore: getEnvInt("REMINDER_DAYS_BEFORE", DefaultReminderDaysBefore),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL é obrigatória")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
