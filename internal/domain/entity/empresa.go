package entity

// Empresa representa o emitente do documento fiscal.
type Empresa struct {
	ID                string
	RazaoSocial       string
	NomeFantasia      string
	CNPJ              string
	InscricaoEstadual string
	Regime            string // CRT: "1" Simples Nacional, "3" Regime Normal
	Endereco          Endereco
}

// Endereco é o endereço fiscal de emitente ou destinatário.
type Endereco struct {
	Logradouro      string
	Numero          string
	Bairro          string
	Municipio       string
	CodigoMunicipio string // código IBGE de 7 dígitos
	UF              string
	CEP             string
	Pais            string
	CodigoPais      string // "1058" Brasil
}
