package fiscal

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/fiscal-nfe/internal/application/dto"
	"github.com/tu-usuario/fiscal-nfe/internal/domain"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	domnfe "github.com/tu-usuario/fiscal-nfe/internal/domain/nfe"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

// CatalogoGrupos é o colaborador de configuração que carrega os grupos
// fiscais. O motor só lê; nunca muta o catálogo.
type CatalogoGrupos interface {
	Grupo(id string) (*entity.GrupoFiscal, bool)
}

// DocumentoUseCase liga a superfície HTTP ao motor: converte o snapshot
// recebido, resolve os grupos fiscais no catálogo e delega às operações
// puras de cálculo, montagem e ciclo de vida.
type DocumentoUseCase struct {
	catalogo CatalogoGrupos
	ambiente string // "1" produção, "2" homologação
}

// NewDocumentoUseCase constrói o caso de uso.
func NewDocumentoUseCase(catalogo CatalogoGrupos, ambiente string) *DocumentoUseCase {
	if ambiente == "" {
		ambiente = nfe.AmbienteHomologacao
	}
	return &DocumentoUseCase{catalogo: catalogo, ambiente: ambiente}
}

// Validar valida o documento, calcula os totais, monta a chave de acesso e o
// leva ao status Validada.
func (uc *DocumentoUseCase) Validar(in dto.DocumentoRequest) (*dto.ValidacaoResponse, error) {
	doc, err := uc.paraEntidade(in)
	if err != nil {
		return nil, err
	}
	if err := Validar(doc); err != nil {
		return nil, err
	}
	if doc.Chave == "" {
		chave, err := uc.montarChave(doc)
		if err != nil {
			return nil, err
		}
		doc.Chave = chave
	}
	return &dto.ValidacaoResponse{
		ID:     doc.ID,
		Status: doc.Status,
		Chave:  doc.Chave,
		Totais: paraTotaisDTO(doc.Totais),
	}, nil
}

// Totais recomputa os totais do documento sem tocar no status.
func (uc *DocumentoUseCase) Totais(in dto.DocumentoRequest) (*dto.TotaisResponse, error) {
	doc, err := uc.paraEntidade(in)
	if err != nil {
		return nil, err
	}
	totais, _, err := CalcularTotais(doc)
	if err != nil {
		return nil, err
	}
	return paraTotaisDTO(totais), nil
}

// Montar calcula e monta a árvore do documento para o serializador.
func (uc *DocumentoUseCase) Montar(in dto.DocumentoRequest) (*domnfe.ArvoreNFe, error) {
	doc, err := uc.paraEntidade(in)
	if err != nil {
		return nil, err
	}
	totais, resultados, err := CalcularTotais(doc)
	if err != nil {
		return nil, err
	}
	doc.Totais = totais
	if doc.Chave == "" {
		chave, err := uc.montarChave(doc)
		if err != nil {
			return nil, err
		}
		doc.Chave = chave
	}
	arv, err := domnfe.MontarArvore(doc, resultados)
	if err != nil {
		return nil, err
	}
	arv.Identificacao.Ambiente = uc.ambiente
	return arv, nil
}

// Cancelar cancela um documento autorizado com a justificativa dada.
func (uc *DocumentoUseCase) Cancelar(in dto.CancelamentoRequest) (*dto.StatusResponse, error) {
	doc, err := uc.paraEntidade(in.Documento)
	if err != nil {
		return nil, err
	}
	if err := Cancelar(doc, in.Justificativa); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{ID: doc.ID, Status: doc.Status}, nil
}

// Transicionar aplica uma transição explícita do ciclo de vida (por exemplo,
// o retorno do transmissor: Autorizada, Rejeitada, Denegada).
func (uc *DocumentoUseCase) Transicionar(in dto.StatusRequest) (*dto.StatusResponse, error) {
	doc, err := uc.paraEntidade(in.Documento)
	if err != nil {
		return nil, err
	}
	if err := TransicionarStatus(doc, in.Para); err != nil {
		return nil, err
	}
	return &dto.StatusResponse{ID: doc.ID, Status: doc.Status}, nil
}

// paraEntidade converte o snapshot e resolve todos os grupos fiscais no
// catálogo. Falta de grupo em qualquer item rejeita o documento inteiro.
func (uc *DocumentoUseCase) paraEntidade(in dto.DocumentoRequest) (*entity.Documento, error) {
	doc := &entity.Documento{
		ID:               in.ID,
		Tipo:             in.Tipo,
		Modelo:           in.Modelo,
		Serie:            in.Serie,
		Numero:           in.Numero,
		NaturezaOperacao: in.NaturezaOperacao,
		TipoOperacao:     in.TipoOperacao,
		DataEmissao:      in.DataEmissao,
		DataVencimento:   in.DataVencimento,
		DataEntrega:      in.DataEntrega,
		Emitente: entity.Empresa{
			RazaoSocial:       in.Emitente.RazaoSocial,
			NomeFantasia:      in.Emitente.NomeFantasia,
			CNPJ:              in.Emitente.CNPJ,
			InscricaoEstadual: in.Emitente.InscricaoEstadual,
			Regime:            in.Emitente.Regime,
			Endereco:          paraEndereco(in.Emitente.Endereco),
		},
		Destinatario: entity.Cliente{
			Nome:              in.Destinatario.Nome,
			CPFCNPJ:           in.Destinatario.CPFCNPJ,
			InscricaoEstadual: in.Destinatario.InscricaoEstadual,
			IndicadorIE:       in.Destinatario.IndicadorIE,
			Email:             in.Destinatario.Email,
			Endereco:          paraEndereco(in.Destinatario.Endereco),
		},
		TipoDescontoDoc: in.TipoDescontoDoc,
		DescontoDoc:     in.DescontoDoc,
		Frete:           in.Frete,
		Seguro:          in.Seguro,
		OutrasDespesas:  in.OutrasDespesas,
		Grupos:          make(map[string]*entity.GrupoFiscal),
		Status:          in.Status,
	}
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}
	if doc.Modelo == "" {
		doc.Modelo = nfe.ModeloNFe
	}
	if doc.Status == "" {
		doc.Status = entity.StatusRascunho
	}
	if doc.DataEmissao.IsZero() {
		doc.DataEmissao = time.Now()
	}

	for i, it := range in.Itens {
		grupo, ok := uc.catalogo.Grupo(it.GrupoFiscalID)
		if !ok {
			return nil, fmt.Errorf("%w: item %d referencia grupo %q", domain.ErrGrupoFiscalAusente, i, it.GrupoFiscalID)
		}
		doc.Grupos[it.GrupoFiscalID] = grupo
		doc.Itens = append(doc.Itens, entity.ItemDocumento{
			ID:               uuid.New().String(),
			Ordem:            i + 1,
			ProdutoID:        it.ProdutoID,
			Descricao:        it.Descricao,
			NCM:              it.NCM,
			CFOP:             it.CFOP,
			CEAN:             it.CEAN,
			Unidade:          it.Unidade,
			Quantidade:       it.Quantidade,
			ValorUnitario:    it.ValorUnitario,
			TipoDesconto:     it.TipoDesconto,
			Desconto:         it.Desconto,
			FreteRateado:     it.FreteRateado,
			SeguroRateado:    it.SeguroRateado,
			DespesasRateadas: it.DespesasRateadas,
			GrupoFiscalID:    it.GrupoFiscalID,
		})
	}
	return doc, nil
}

// montarChave monta a chave de acesso do documento. O código numérico (cNF)
// é derivado de um UUID novo, cumprindo a recomendação da SEFAZ de não usar
// o número do documento.
func (uc *DocumentoUseCase) montarChave(doc *entity.Documento) (string, error) {
	u := uuid.New()
	cnf := binary.BigEndian.Uint32(u[0:4]) % 100_000_000
	tpEmis := nfe.EmissaoNormal
	return nfe.MontarChave(nfe.ChaveParams{
		UF:     doc.Emitente.Endereco.UF,
		AAMM:   doc.DataEmissao.Format("0601"),
		CNPJ:   doc.Emitente.CNPJ,
		Modelo: doc.Modelo,
		Serie:  doc.Serie,
		Numero: doc.Numero,
		TpEmis: tpEmis,
		CNF:    fmt.Sprintf("%08d", cnf),
	})
}

func paraEndereco(in dto.EnderecoDTO) entity.Endereco {
	return entity.Endereco{
		Logradouro:      in.Logradouro,
		Numero:          in.Numero,
		Bairro:          in.Bairro,
		Municipio:       in.Municipio,
		CodigoMunicipio: in.CodigoMunicipio,
		UF:              in.UF,
		CEP:             in.CEP,
		Pais:            "BRASIL",
		CodigoPais:      "1058",
	}
}

func paraTotaisDTO(t *entity.TotaisDocumento) *dto.TotaisResponse {
	if t == nil {
		return nil
	}
	return &dto.TotaisResponse{
		SomaLiquidos:        t.SomaLiquidos,
		BaseICMS:            t.BaseICMS,
		ValorICMS:           t.ValorICMS,
		BaseST:              t.BaseST,
		ValorST:             t.ValorST,
		ValorIPI:            t.ValorIPI,
		ValorPIS:            t.ValorPIS,
		ValorCOFINS:         t.ValorCOFINS,
		ValorICMSDesonerado: t.ValorICMSDesonerado,
		ValorDiferido:       t.ValorDiferido,
		ValorCreditoSN:      t.ValorCreditoSN,
		ValorFCPUFDest:      t.ValorFCPUFDest,
		ValorICMSUFDest:     t.ValorICMSUFDest,
		ValorICMSUFRemet:    t.ValorICMSUFRemet,
		DescontoDocumento:   t.DescontoDocumento,
		Frete:               t.Frete,
		Seguro:              t.Seguro,
		OutrasDespesas:      t.OutrasDespesas,
		ValorTotal:          t.ValorTotal,
	}
}
