package nfe

import (
	"fmt"
	"strings"
	"unicode"
)

// ChaveParams reúne os campos que compõem os 43 primeiros dígitos da chave de
// acesso da NF-e (o 44º é o dígito verificador, calculado por módulo 11).
type ChaveParams struct {
	UF     string // sigla da UF do emitente ("SP", "MG"...)
	AAMM   string // ano e mês de emissão, 4 dígitos ("2408")
	CNPJ   string // CNPJ do emitente, com ou sem pontuação
	Modelo string // "55" NF-e, "65" NFC-e
	Serie  string // série do documento (até 3 dígitos)
	Numero string // número do documento (até 9 dígitos)
	TpEmis string // tipo de emissão (1 = normal)
	CNF    string // código numérico aleatório (8 dígitos)
}

// MontarChave monta a chave de acesso de 44 dígitos:
// cUF + AAMM + CNPJ + mod + serie + nNF + tpEmis + cNF + cDV.
func MontarChave(p ChaveParams) (string, error) {
	cuf, ok := CodigoUF[strings.ToUpper(p.UF)]
	if !ok {
		return "", fmt.Errorf("nfe: UF desconhecida: %q", p.UF)
	}
	cnpj := extrairDigitos(p.CNPJ)
	if len(cnpj) != 14 {
		return "", fmt.Errorf("nfe: CNPJ deve ter 14 dígitos, encontrados %d", len(cnpj))
	}
	if len(p.AAMM) != 4 || !soDigitos(p.AAMM) {
		return "", fmt.Errorf("nfe: AAMM deve ter 4 dígitos, recebido %q", p.AAMM)
	}
	if p.Modelo != ModeloNFe && p.Modelo != ModeloNFCe {
		return "", fmt.Errorf("nfe: modelo de documento desconhecido: %q", p.Modelo)
	}
	serie, err := preencherZeros(p.Serie, 3)
	if err != nil {
		return "", fmt.Errorf("nfe: série inválida: %w", err)
	}
	numero, err := preencherZeros(p.Numero, 9)
	if err != nil {
		return "", fmt.Errorf("nfe: número inválido: %w", err)
	}
	cnf, err := preencherZeros(p.CNF, 8)
	if err != nil {
		return "", fmt.Errorf("nfe: código numérico inválido: %w", err)
	}
	if len(p.TpEmis) != 1 || !soDigitos(p.TpEmis) {
		return "", fmt.Errorf("nfe: tipo de emissão inválido: %q", p.TpEmis)
	}

	base := cuf + p.AAMM + string(cnpj) + p.Modelo + serie + numero + p.TpEmis + cnf
	dv := digitoVerificadorChave(base)
	return base + string(dv), nil
}

// ValidarChave confere comprimento e dígito verificador de uma chave de acesso.
func ValidarChave(chave string) error {
	digits := extrairDigitos(chave)
	if len(digits) != 44 {
		return fmt.Errorf("nfe: chave de acesso deve ter 44 dígitos, encontrados %d", len(digits))
	}
	esperado := digitoVerificadorChave(string(digits[:43]))
	if digits[43] != esperado {
		return fmt.Errorf("nfe: dígito verificador da chave inválido: esperado %c, recebido %c", esperado, digits[43])
	}
	return nil
}

// digitoVerificadorChave calcula o cDV por módulo 11 com pesos 2..9
// aplicados da direita para a esquerda sobre os 43 dígitos da chave.
func digitoVerificadorChave(base string) byte {
	peso := 2
	sum := 0
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * peso
		peso++
		if peso > 9 {
			peso = 2
		}
	}
	resto := sum % 11
	if resto == 0 || resto == 1 {
		return '0'
	}
	return byte('0' + (11 - resto))
}

// pesos do primeiro e do segundo dígito verificador do CNPJ (Receita Federal).
var (
	cnpjPesosDV1 = [12]int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjPesosDV2 = [13]int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// ValidarCNPJ valida os dois dígitos verificadores do CNPJ (módulo 11).
// Aceita o número com ou sem pontuação ("11.222.333/0001-81" ou "11222333000181").
func ValidarCNPJ(cnpj string) error {
	digits := extrairDigitos(cnpj)
	if len(digits) != 14 {
		return fmt.Errorf("nfe: CNPJ deve ter 14 dígitos, encontrados %d", len(digits))
	}
	if todosIguais(digits) {
		return fmt.Errorf("nfe: CNPJ com todos os dígitos iguais é inválido")
	}
	dv1 := digitoCNPJ(digits[:12], cnpjPesosDV1[:])
	if digits[12] != dv1 {
		return fmt.Errorf("nfe: primeiro dígito verificador do CNPJ inválido: esperado %c, recebido %c", dv1, digits[12])
	}
	dv2 := digitoCNPJ(digits[:13], cnpjPesosDV2[:])
	if digits[13] != dv2 {
		return fmt.Errorf("nfe: segundo dígito verificador do CNPJ inválido: esperado %c, recebido %c", dv2, digits[13])
	}
	return nil
}

func digitoCNPJ(base []byte, pesos []int) byte {
	sum := 0
	for i, d := range base {
		sum += int(d-'0') * pesos[i]
	}
	resto := sum % 11
	if resto < 2 {
		return '0'
	}
	return byte('0' + (11 - resto))
}

func todosIguais(digits []byte) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

func preencherZeros(s string, tamanho int) (string, error) {
	if s == "" || !soDigitos(s) {
		return "", fmt.Errorf("esperado campo numérico, recebido %q", s)
	}
	if len(s) > tamanho {
		return "", fmt.Errorf("campo %q excede %d dígitos", s, tamanho)
	}
	return strings.Repeat("0", tamanho-len(s)) + s, nil
}

func soDigitos(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func extrairDigitos(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}
