package entity

// Indicador da inscrição estadual do destinatário (campo indIEDest).
const (
	IndIEContribuinte    = "1" // Contribuinte ICMS
	IndIEIsento          = "2" // Contribuinte isento de inscrição
	IndIENaoContribuinte = "9" // Não contribuinte
)

// Cliente representa o destinatário do documento fiscal.
type Cliente struct {
	ID                string
	Nome              string
	CPFCNPJ           string // 11 dígitos (CPF) ou 14 (CNPJ)
	InscricaoEstadual string
	IndicadorIE       string
	Email             string
	Endereco          Endereco
}
