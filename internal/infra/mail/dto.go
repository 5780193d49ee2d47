package mail

type ChargeEmailData struct {
	NomeResponsavel string
	RazaoSocial     string
	Valor           string
	Vencimento      string
	TipoPagamento   string
	Descricao       string

	LinhaDigitavel string
	URLPdf         string
	ChavePix       string
	LinkPagamento  string
}

type ReminderEmailData struct {
	RazaoSocial   string
	Plano         string
	MesReferencia string
	Valor         string
	Vencimento    string
	Metodo        string

	ChavePix      string
	QRCodePix     string
	BoletoURL     string
	LinkPagamento string
}

type AdminAlertData struct {
	Mensagem string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}
