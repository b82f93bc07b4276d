// Package catalogo carrega o catálogo de grupos fiscais a partir de um
// arquivo YAML. O catálogo é lido uma vez na subida e fica imutável; o motor
// de cálculo só consulta.
package catalogo

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/tu-usuario/fiscal-nfe/internal/domain/entity"
	"github.com/tu-usuario/fiscal-nfe/pkg/moeda"
	"github.com/tu-usuario/fiscal-nfe/pkg/nfe"
)

// Catalogo é a coleção de grupos fiscais indexada por ID.
type Catalogo struct {
	grupos map[string]*entity.GrupoFiscal
}

// Grupo devolve o grupo fiscal pelo ID.
func (c *Catalogo) Grupo(id string) (*entity.GrupoFiscal, bool) {
	g, ok := c.grupos[id]
	return g, ok
}

// IDs lista os IDs carregados, para logging na subida.
func (c *Catalogo) IDs() []string {
	ids := make([]string, 0, len(c.grupos))
	for id := range c.grupos {
		ids = append(ids, id)
	}
	return ids
}

// NovoDeGrupos monta um catálogo em memória (útil em testes).
func NovoDeGrupos(grupos ...*entity.GrupoFiscal) *Catalogo {
	c := &Catalogo{grupos: make(map[string]*entity.GrupoFiscal)}
	for _, g := range grupos {
		c.grupos[g.ID] = g
	}
	return c
}

// Estruturas cruas do YAML. Valores numéricos chegam como string para serem
// convertidos com a mesma validação do resto do motor; ponteiro nulo preserva
// a distinção entre "não informado" e zero.
type arquivoCatalogo struct {
	Grupos []grupoCru `mapstructure:"grupos"`
}

type grupoCru struct {
	ID        string `mapstructure:"id"`
	Descricao string `mapstructure:"descricao"`
	Regime    string `mapstructure:"regime"`

	ICMS       *icmsCru      `mapstructure:"icms"`
	ICMSUFDest *ufDestCru    `mapstructure:"icms_uf_dest"`
	IPI        *ipiCru       `mapstructure:"ipi"`
	PIS        *pisCofinsCru `mapstructure:"pis"`
	COFINS     *pisCofinsCru `mapstructure:"cofins"`
}

type icmsCru struct {
	CST              string `mapstructure:"cst"`
	CSOSN            string `mapstructure:"csosn"`
	OrigemMercadoria string `mapstructure:"origem"`

	ModalidadeBC string  `mapstructure:"mod_bc"`
	Aliquota     *string `mapstructure:"aliquota"`
	ReducaoBase  string  `mapstructure:"reducao_base"`

	ModalidadeBCST string  `mapstructure:"mod_bc_st"`
	MVAST          string  `mapstructure:"mva_st"`
	ReducaoBaseST  string  `mapstructure:"reducao_base_st"`
	AliquotaST     *string `mapstructure:"aliquota_st"`

	PercentualDiferimento string `mapstructure:"diferimento"`
	AliquotaCreditoSN     string `mapstructure:"aliquota_credito_sn"`
	MotivoDesoneracao     string `mapstructure:"motivo_desoneracao"`

	ICMSInclusoPreco   bool `mapstructure:"incluso_preco"`
	ICMSSTInclusoPreco bool `mapstructure:"st_incluso_preco"`
}

type ufDestCru struct {
	AliquotaFCPDestino     string `mapstructure:"aliquota_fcp"`
	AliquotaInternaDestino string `mapstructure:"aliquota_interna"`
	AliquotaInterestadual  string `mapstructure:"aliquota_interestadual"`
	PercentualPartilha     string `mapstructure:"partilha"`
}

type ipiCru struct {
	CST                 string `mapstructure:"cst"`
	ClasseEnquadramento string `mapstructure:"classe_enquadramento"`
	CodigoEnquadramento string `mapstructure:"codigo_enquadramento"`
	CNPJProdutor        string `mapstructure:"cnpj_produtor"`

	TipoCalculo     string  `mapstructure:"tipo_calculo"`
	Aliquota        *string `mapstructure:"aliquota"`
	ValorPorUnidade *string `mapstructure:"valor_por_unidade"`

	IPIInclusoPreco bool `mapstructure:"incluso_preco"`
	IncluirBCICMS   bool `mapstructure:"incluir_bc_icms"`
	IncluirBCICMSST bool `mapstructure:"incluir_bc_icms_st"`
}

type pisCofinsCru struct {
	CST             string  `mapstructure:"cst"`
	Aliquota        *string `mapstructure:"aliquota"`
	ValorPorUnidade *string `mapstructure:"valor_por_unidade"`
}

// Carregar lê o arquivo YAML e materializa os grupos fiscais. Qualquer valor
// numérico malformado ou ID duplicado falha a subida inteira.
func Carregar(caminho string) (*Catalogo, error) {
	v := viper.New()
	v.SetConfigFile(caminho)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("catálogo fiscal: %w", err)
	}

	var arq arquivoCatalogo
	if err := v.Unmarshal(&arq); err != nil {
		return nil, fmt.Errorf("catálogo fiscal: %w", err)
	}

	c := &Catalogo{grupos: make(map[string]*entity.GrupoFiscal, len(arq.Grupos))}
	for _, cru := range arq.Grupos {
		if cru.ID == "" {
			return nil, fmt.Errorf("catálogo fiscal: grupo sem id")
		}
		if _, existe := c.grupos[cru.ID]; existe {
			return nil, fmt.Errorf("catálogo fiscal: grupo %q duplicado", cru.ID)
		}
		g, err := materializarGrupo(cru)
		if err != nil {
			return nil, fmt.Errorf("catálogo fiscal: grupo %q: %w", cru.ID, err)
		}
		c.grupos[cru.ID] = g
	}
	return c, nil
}

func materializarGrupo(cru grupoCru) (*entity.GrupoFiscal, error) {
	g := &entity.GrupoFiscal{
		ID:        cru.ID,
		Descricao: cru.Descricao,
		Regime:    cru.Regime,
	}
	if g.Regime == "" {
		g.Regime = nfe.RegimeNormal
	}

	var err error
	if cru.ICMS != nil {
		if g.ICMS, err = materializarICMS(*cru.ICMS); err != nil {
			return nil, fmt.Errorf("icms: %w", err)
		}
	}
	if cru.ICMSUFDest != nil {
		if g.ICMSUFDest, err = materializarUFDest(*cru.ICMSUFDest); err != nil {
			return nil, fmt.Errorf("icms_uf_dest: %w", err)
		}
	}
	if cru.IPI != nil {
		if g.IPI, err = materializarIPI(*cru.IPI); err != nil {
			return nil, fmt.Errorf("ipi: %w", err)
		}
	}
	if cru.PIS != nil {
		if g.PIS, err = materializarPISCOFINS(*cru.PIS); err != nil {
			return nil, fmt.Errorf("pis: %w", err)
		}
	}
	if cru.COFINS != nil {
		if g.COFINS, err = materializarPISCOFINS(*cru.COFINS); err != nil {
			return nil, fmt.Errorf("cofins: %w", err)
		}
	}
	return g, nil
}

func materializarICMS(cru icmsCru) (*entity.ConfigICMS, error) {
	cfg := &entity.ConfigICMS{
		CST:                cru.CST,
		CSOSN:              cru.CSOSN,
		OrigemMercadoria:   cru.OrigemMercadoria,
		ModalidadeBC:       cru.ModalidadeBC,
		ModalidadeBCST:     cru.ModalidadeBCST,
		MotivoDesoneracao:  cru.MotivoDesoneracao,
		ICMSInclusoPreco:   cru.ICMSInclusoPreco,
		ICMSSTInclusoPreco: cru.ICMSSTInclusoPreco,
	}

	var err error
	if cfg.Aliquota, err = percentualOpcional(cru.Aliquota); err != nil {
		return nil, err
	}
	if cfg.AliquotaST, err = percentualOpcional(cru.AliquotaST); err != nil {
		return nil, err
	}
	if cfg.ReducaoBase, err = percentualOuZero(cru.ReducaoBase); err != nil {
		return nil, err
	}
	if cfg.MVAST, err = percentualOuZero(cru.MVAST); err != nil {
		return nil, err
	}
	if cfg.ReducaoBaseST, err = percentualOuZero(cru.ReducaoBaseST); err != nil {
		return nil, err
	}
	if cfg.PercentualDiferimento, err = percentualOuZero(cru.PercentualDiferimento); err != nil {
		return nil, err
	}
	if cfg.AliquotaCreditoSN, err = percentualOuZero(cru.AliquotaCreditoSN); err != nil {
		return nil, err
	}
	return cfg, nil
}

func materializarUFDest(cru ufDestCru) (*entity.ConfigICMSUFDest, error) {
	cfg := &entity.ConfigICMSUFDest{}
	var err error
	if cfg.AliquotaFCPDestino, err = percentualOuZero(cru.AliquotaFCPDestino); err != nil {
		return nil, err
	}
	if cfg.AliquotaInternaDestino, err = percentualOuZero(cru.AliquotaInternaDestino); err != nil {
		return nil, err
	}
	if cfg.AliquotaInterestadual, err = percentualOuZero(cru.AliquotaInterestadual); err != nil {
		return nil, err
	}
	if cfg.PercentualPartilha, err = percentualOuZero(cru.PercentualPartilha); err != nil {
		return nil, err
	}
	return cfg, nil
}

func materializarIPI(cru ipiCru) (*entity.ConfigIPI, error) {
	cfg := &entity.ConfigIPI{
		CST:                 cru.CST,
		ClasseEnquadramento: cru.ClasseEnquadramento,
		CodigoEnquadramento: cru.CodigoEnquadramento,
		CNPJProdutor:        cru.CNPJProdutor,
		TipoCalculo:         cru.TipoCalculo,
		IPIInclusoPreco:     cru.IPIInclusoPreco,
		IncluirBCICMS:       cru.IncluirBCICMS,
		IncluirBCICMSST:     cru.IncluirBCICMSST,
	}
	if cfg.CodigoEnquadramento == "" {
		cfg.CodigoEnquadramento = "999"
	}
	if cfg.TipoCalculo == "" {
		cfg.TipoCalculo = entity.IPIPercentual
	}

	var err error
	if cfg.Aliquota, err = percentualOpcional(cru.Aliquota); err != nil {
		return nil, err
	}
	if cfg.ValorPorUnidade, err = percentualOpcional(cru.ValorPorUnidade); err != nil {
		return nil, err
	}
	return cfg, nil
}

func materializarPISCOFINS(cru pisCofinsCru) (*entity.ConfigPISCOFINS, error) {
	cfg := &entity.ConfigPISCOFINS{CST: cru.CST}
	var err error
	if cfg.Aliquota, err = percentualOpcional(cru.Aliquota); err != nil {
		return nil, err
	}
	if cfg.ValorPorUnidade, err = percentualOpcional(cru.ValorPorUnidade); err != nil {
		return nil, err
	}
	return cfg, nil
}

// percentualOpcional converte alíquota opcional: ausente fica nula, presente
// é validada e quantizada na escala de alíquotas.
func percentualOpcional(s *string) (*decimal.Decimal, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := moeda.Parse(*s)
	if err != nil {
		return nil, err
	}
	q := moeda.Quantizar(d, moeda.EscalaUnitario)
	return &q, nil
}

func percentualOuZero(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := moeda.Parse(s)
	if err != nil {
		return decimal.Zero, err
	}
	return moeda.Quantizar(d, moeda.EscalaUnitario), nil
}
