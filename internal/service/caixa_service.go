package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"vendr/internal/apperr"
	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/model"
	"vendr/internal/repository"
	"vendr/internal/settlement"
)

type CaixaService interface {
	Abrir(ctx context.Context, conta domain.AccountContext, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error)
	Fechar(ctx context.Context, conta domain.AccountContext, req dto.FecharCaixaRequest) (*dto.FechamentoResponse, error)
	RegistrarMovimento(ctx context.Context, conta domain.AccountContext, req dto.MovimentoManualRequest) error
	SessaoAtiva(ctx context.Context, conta domain.AccountContext) (*dto.SessaoCaixaResponse, error)
	Historico(ctx context.Context, conta domain.AccountContext, page, limit int) ([]dto.SessaoCaixaResponse, int64, error)
}

type caixaService struct {
	repo      repository.CaixaRepository
	vendaRepo repository.VendaRepository
}

func NewCaixaService(repo repository.CaixaRepository, vendaRepo repository.VendaRepository) CaixaService {
	return &caixaService{repo: repo, vendaRepo: vendaRepo}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────

func (s *caixaService) Abrir(ctx context.Context, conta domain.AccountContext, req dto.AbrirCaixaRequest) (*dto.SessaoCaixaResponse, error) {
	if req.SaldoInicial.IsNegative() {
		return nil, fmt.Errorf("%w: saldo inicial negativo (%s)", apperr.ErrValorInvalido, req.SaldoInicial)
	}

	// Guard: no duplicate open session per (dono_ref, escopo). The partial
	// unique index in Postgres closes the race between concurrent opens.
	existing, err := s.repo.FindSessaoAberta(ctx, conta.DonoRef(), string(conta.Escopo))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.ErrCaixaJaAberta
	}

	sessao := &model.SessaoCaixa{
		DonoRef:      conta.DonoRef(),
		Escopo:       string(conta.Escopo),
		EmpresaID:    conta.EmpresaID,
		SaldoInicial: req.SaldoInicial,
		Status:       "aberta",
	}
	if err := s.repo.CreateSessao(ctx, sessao); err != nil {
		return nil, err
	}
	return sessaoToResponse(sessao), nil
}

// ── Fechar ────────────────────────────────────────────────────────────────────
// Terminal transition: fetches the session window's sales and manual cash
// movements, computes the theoretical balance, records the counted balance
// and quebra, and closes. A second call hits ErrCaixaJaFechada before any
// recomputation or write — corrections go through adjustment movements on a
// new session, never by reopening.

func (s *caixaService) Fechar(ctx context.Context, conta domain.AccountContext, req dto.FecharCaixaRequest) (*dto.FechamentoResponse, error) {
	if req.SaldoContado.IsNegative() {
		return nil, fmt.Errorf("%w: saldo contado negativo (%s)", apperr.ErrValorInvalido, req.SaldoContado)
	}
	sessaoID, err := uuid.Parse(req.SessaoCaixaID)
	if err != nil {
		return nil, fmt.Errorf("%w: sessao_caixa_id inválido", apperr.ErrNaoEncontrado)
	}

	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNaoEncontrado
		}
		return nil, err
	}
	if !sessaoPertenceAConta(sessao, conta) {
		return nil, apperr.ErrNaoEncontrado
	}
	if sessao.Status != "aberta" {
		return nil, apperr.ErrCaixaJaFechada
	}

	agora := time.Now()
	vendas, err := s.vendaRepo.Query(ctx, vendaFilterParaSessao(sessao, agora))
	if err != nil {
		return nil, err
	}
	totais, err := settlement.CalcularTotais(vendas)
	if err != nil {
		return nil, err
	}
	movimentos, err := s.repo.SomaMovimentos(ctx, sessao.ID)
	if err != nil {
		return nil, err
	}

	// Only cash reaches the drawer; the signed movement sum already nets
	// saídas manuais.
	teorico := settlement.SaldoTeorico(sessao.SaldoInicial, totais.Dinheiro().Add(movimentos), decimal.Zero)
	quebra := settlement.Quebra(req.SaldoContado, teorico)

	contado := req.SaldoContado
	sessao.SaldoTeorico = &teorico
	sessao.SaldoContado = &contado
	sessao.Quebra = &quebra
	sessao.Status = "fechada"
	sessao.FechadaEm = &agora

	if err := s.repo.UpdateSessao(ctx, sessao); err != nil {
		return nil, err
	}

	return &dto.FechamentoResponse{
		SessaoCaixaID: sessao.ID.String(),
		TotalVendido:  totais.TotalVendido,
		PorMetodo:     totais.PorMetodo,
		SaldoTeorico:  teorico,
		SaldoContado:  contado,
		Quebra:        quebra,
		Status:        "fechada",
	}, nil
}

// sessaoPertenceAConta guards session mutations looked up by id: a session
// not owned by the caller is indistinguishable from a missing one.
func sessaoPertenceAConta(sessao *model.SessaoCaixa, conta domain.AccountContext) bool {
	return sessao.DonoRef == conta.DonoRef() && sessao.Escopo == string(conta.Escopo)
}

// vendaFilterParaSessao scopes the settlement query to the session's owner
// and window. Status is left open so the calculator can validate every row in
// the batch — it accumulates confirmed rows only.
func vendaFilterParaSessao(sessao *model.SessaoCaixa, ate time.Time) dto.VendaFilter {
	f := dto.VendaFilter{DataDe: sessao.AbertaEm, DataAte: ate}
	switch domain.Escopo(sessao.Escopo) {
	case domain.EscopoVendedor:
		ref := sessao.DonoRef
		f.VendedorID = &ref
	case domain.EscopoEmpresa:
		f.EmpresaID = sessao.EmpresaID
	default:
		ref := sessao.DonoRef
		f.UsuarioID = &ref
	}
	return f
}

// ── RegistrarMovimento ────────────────────────────────────────────────────────
// Entrada / saída manual de dinheiro. Movements are immutable — no
// Update/Delete exists on the repository interface.

func (s *caixaService) RegistrarMovimento(ctx context.Context, conta domain.AccountContext, req dto.MovimentoManualRequest) error {
	sessaoID, err := uuid.Parse(req.SessaoCaixaID)
	if err != nil {
		return fmt.Errorf("%w: sessao_caixa_id inválido", apperr.ErrNaoEncontrado)
	}
	sessao, err := s.repo.FindSessaoByID(ctx, sessaoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNaoEncontrado
		}
		return err
	}
	if !sessaoPertenceAConta(sessao, conta) {
		return apperr.ErrNaoEncontrado
	}
	if sessao.Status != "aberta" {
		return apperr.ErrCaixaJaFechada
	}

	valor := req.Valor
	if req.Tipo == "saida_manual" {
		valor = req.Valor.Neg()
	}
	metodo := model.MetodoDinheiro
	mov := &model.MovimentoCaixa{
		SessaoCaixaID:   sessaoID,
		Tipo:            req.Tipo,
		MetodoPagamento: &metodo,
		Valor:           valor,
		Descricao:       req.Descricao,
	}
	return s.repo.CreateMovimento(ctx, mov)
}

// ── SessaoAtiva / Historico ───────────────────────────────────────────────────

func (s *caixaService) SessaoAtiva(ctx context.Context, conta domain.AccountContext) (*dto.SessaoCaixaResponse, error) {
	sessao, err := s.repo.FindSessaoAberta(ctx, conta.DonoRef(), string(conta.Escopo))
	if err != nil {
		return nil, err
	}
	if sessao == nil {
		return nil, apperr.ErrNaoEncontrado
	}
	return sessaoToResponse(sessao), nil
}

func (s *caixaService) Historico(ctx context.Context, conta domain.AccountContext, page, limit int) ([]dto.SessaoCaixaResponse, int64, error) {
	sessoes, total, err := s.repo.ListSessoes(ctx, conta.DonoRef(), string(conta.Escopo), page, limit)
	if err != nil {
		return nil, 0, err
	}
	resp := make([]dto.SessaoCaixaResponse, 0, len(sessoes))
	for i := range sessoes {
		resp = append(resp, *sessaoToResponse(&sessoes[i]))
	}
	return resp, total, nil
}

func sessaoToResponse(s *model.SessaoCaixa) *dto.SessaoCaixaResponse {
	resp := &dto.SessaoCaixaResponse{
		ID:           s.ID.String(),
		Escopo:       s.Escopo,
		SaldoInicial: s.SaldoInicial,
		Status:       s.Status,
		AbertaEm:     s.AbertaEm.Format(time.RFC3339),
		SaldoTeorico: s.SaldoTeorico,
		SaldoContado: s.SaldoContado,
		Quebra:       s.Quebra,
	}
	if s.FechadaEm != nil {
		t := s.FechadaEm.Format(time.RFC3339)
		resp.FechadaEm = &t
	}
	return resp
}
