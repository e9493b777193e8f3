package worker

// relatorio_worker.go
// Processes report jobs from QueueRelatorio: renders the daily PDF for an
// empresa and chains an email job with the file attached.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"vendr/internal/domain"
	"vendr/internal/dto"
	"vendr/internal/export"
	"vendr/internal/repository"
	"vendr/internal/service"
)

// RelatorioJobPayload identifies the empresa and day to report on.
type RelatorioJobPayload struct {
	EmpresaID string `json:"empresa_id"`
	Email     string `json:"email"`
	Dia       string `json:"dia"` // YYYY-MM-DD
}

type RelatorioWorker struct {
	relatorio   service.RelatorioService
	vendaRepo   repository.VendaRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewRelatorioWorker(relatorio service.RelatorioService, vendaRepo repository.VendaRepository, dispatcher *Dispatcher, storagePath string) *RelatorioWorker {
	return &RelatorioWorker{
		relatorio:   relatorio,
		vendaRepo:   vendaRepo,
		dispatcher:  dispatcher,
		storagePath: storagePath,
	}
}

func (w *RelatorioWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload RelatorioJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("relatorio_worker: invalid payload")
		return nil
	}
	empresaID, err := uuid.Parse(payload.EmpresaID)
	if err != nil {
		log.Error().Str("empresa_id", payload.EmpresaID).Msg("relatorio_worker: invalid empresa_id")
		return nil
	}
	dia, err := time.ParseInLocation("2006-01-02", payload.Dia, time.Local)
	if err != nil {
		log.Error().Str("dia", payload.Dia).Msg("relatorio_worker: invalid dia")
		return nil
	}

	conta := domain.AccountContext{Escopo: domain.EscopoEmpresa, EmpresaID: &empresaID}
	de := dia
	ate := dia.AddDate(0, 0, 1)

	resumo, err := w.relatorio.Resumo(ctx, conta, de, ate)
	if err != nil {
		return fmt.Errorf("resumo empresa %s: %w", empresaID, err)
	}
	vendas, err := w.vendaRepo.Query(ctx, dto.VendaFilter{EmpresaID: &empresaID, DataDe: de, DataAte: ate})
	if err != nil {
		return fmt.Errorf("vendas empresa %s: %w", empresaID, err)
	}

	titulo := fmt.Sprintf("Relatório Diário — %s", dia.Format("02/01/2006"))
	nomeArquivo := fmt.Sprintf("relatorio_%s_%s.pdf", empresaID, dia.Format("20060102"))
	pdfPath, err := export.RelatorioPDFArquivo(w.storagePath, nomeArquivo, titulo, resumo, vendas)
	if err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}

	emailJob := EmailJobPayload{
		ToEmail: payload.Email,
		Subject: titulo,
		Body: fmt.Sprintf(
			"Resumo do dia %s\n\nTotal vendido: R$ %s\nVendas: %d\nTicket médio: R$ %s\n\nO relatório completo segue em anexo.",
			dia.Format("02/01/2006"), resumo.TotalVendido.StringFixed(2), resumo.Quantidade, resumo.TicketMedio.StringFixed(2)),
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}

	log.Info().Str("empresa_id", payload.EmpresaID).Str("pdf", pdfPath).Msg("relatorio_worker: daily report generated")
	return nil
}
