package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vendr/internal/domain"
	"vendr/internal/dto"
)

// Dashboard aggregates are recomputed at most once per minute per account;
// reads in between are served from Redis.
const dashboardCacheTTL = time.Minute

type DashboardService interface {
	ResumoDoDia(ctx context.Context, conta domain.AccountContext) (*dto.ResumoResponse, error)
	ResumoDoPeriodo(ctx context.Context, conta domain.AccountContext, de, ate time.Time) (*dto.ResumoResponse, error)
	// Invalidar drops the cached day summary after a mutation (sale,
	// cancellation, expense). Best effort.
	Invalidar(ctx context.Context, conta domain.AccountContext)
}

type dashboardService struct {
	relatorio RelatorioService
	rdb       *redis.Client
}

func NewDashboardService(relatorio RelatorioService, rdb *redis.Client) DashboardService {
	return &dashboardService{relatorio: relatorio, rdb: rdb}
}

func (s *dashboardService) ResumoDoDia(ctx context.Context, conta domain.AccountContext) (*dto.ResumoResponse, error) {
	agora := time.Now()
	de := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	ate := de.AddDate(0, 0, 1)
	cacheKey := dashboardCacheKey(conta, de)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var resumo dto.ResumoResponse
			if jsonErr := json.Unmarshal(cached, &resumo); jsonErr == nil {
				return &resumo, nil
			}
		}
	}

	resumo, err := s.relatorio.Resumo(ctx, conta, de, ate)
	if err != nil {
		return nil, err
	}

	// populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resumo); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), cacheKey, b, dashboardCacheTTL).Err()
		}
	}
	return resumo, nil
}

func (s *dashboardService) ResumoDoPeriodo(ctx context.Context, conta domain.AccountContext, de, ate time.Time) (*dto.ResumoResponse, error) {
	return s.relatorio.Resumo(ctx, conta, de, ate)
}

func (s *dashboardService) Invalidar(ctx context.Context, conta domain.AccountContext) {
	if s.rdb == nil {
		return
	}
	agora := time.Now()
	de := time.Date(agora.Year(), agora.Month(), agora.Day(), 0, 0, 0, 0, agora.Location())
	_ = s.rdb.Del(ctx, dashboardCacheKey(conta, de)).Err()
}

func dashboardCacheKey(conta domain.AccountContext, dia time.Time) string {
	return fmt.Sprintf("dashboard:%s:%s:%s", conta.Escopo, conta.DonoRef(), dia.Format("2006-01-02"))
}
