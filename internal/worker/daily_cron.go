package worker

// daily_cron.go
// Background goroutine that, once per day at the configured hour, enqueues a
// report job for every empresa that opted into the daily summary email.

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"vendr/internal/repository"
)

const cronTickInterval = time.Minute

// DailyCronConfig holds the dependencies of the daily report goroutine.
type DailyCronConfig struct {
	EmpresaRepo repository.EmpresaRepository
	Dispatcher  *Dispatcher
	// Hora is the local hour (0-23) at which reports are enqueued.
	Hora int
}

// StartDailyCron ticks every minute and fires once when the clock crosses the
// configured hour. It respects the context for graceful shutdown.
func StartDailyCron(ctx context.Context, cfg DailyCronConfig) {
	go func() {
		ticker := time.NewTicker(cronTickInterval)
		defer ticker.Stop()

		log.Info().Int("hora", cfg.Hora).Msg("daily_cron: started")
		var lastRun string

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("daily_cron: shutting down")
				return
			case now := <-ticker.C:
				dia := now.Format("2006-01-02")
				if now.Hour() != cfg.Hora || lastRun == dia {
					continue
				}
				lastRun = dia
				enqueueDailyReports(ctx, cfg, now)
			}
		}
	}()
}

func enqueueDailyReports(ctx context.Context, cfg DailyCronConfig, now time.Time) {
	empresas, err := cfg.EmpresaRepo.ListComRelatorioDiario(ctx)
	if err != nil {
		log.Error().Err(err).Msg("daily_cron: failed to list empresas")
		return
	}
	if len(empresas) == 0 {
		return
	}

	dia := now.Format("2006-01-02")
	enqueued := 0
	for i := range empresas {
		e := &empresas[i]
		if e.EmailRelatorio == nil {
			continue
		}
		payload := RelatorioJobPayload{
			EmpresaID: e.ID.String(),
			Email:     *e.EmailRelatorio,
			Dia:       dia,
		}
		if err := cfg.Dispatcher.EnqueueRelatorio(ctx, payload); err != nil {
			log.Error().Err(err).Str("empresa_id", e.ID.String()).Msg("daily_cron: enqueue failed")
			continue
		}
		enqueued++
	}
	log.Info().Int("enqueued", enqueued).Str("dia", dia).Msg("daily_cron: daily reports enqueued")
}
