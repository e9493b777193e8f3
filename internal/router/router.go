package router

import (
	"time"

	"vendr/internal/config"
	"vendr/internal/handler"
	"vendr/internal/middleware"
	"vendr/internal/repository"
	"vendr/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	empresaRepo := repository.NewEmpresaRepository(db)
	vendedorRepo := repository.NewVendedorRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	despesaRepo := repository.NewDespesaRepository(db)
	caixaRepo := repository.NewCaixaRepository(db)
	kitRepo := repository.NewKitRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, db)
	vendaSvc := service.NewVendaService(vendaRepo, produtoRepo)
	despesaSvc := service.NewDespesaService(despesaRepo)
	vendedorSvc := service.NewVendedorService(vendedorRepo, vendaRepo)
	caixaSvc := service.NewCaixaService(caixaRepo, vendaRepo)
	kitSvc := service.NewKitService(kitRepo, produtoRepo, db)
	relatorioSvc := service.NewRelatorioService(vendaRepo, despesaRepo, vendedorRepo, usuarioRepo, empresaRepo)
	dashboardSvc := service.NewDashboardService(relatorioSvc, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	produtosH := handler.NewProdutoHandler(produtoSvc)
	vendasH := handler.NewVendaHandler(vendaSvc, dashboardSvc)
	despesasH := handler.NewDespesaHandler(despesaSvc)
	vendedoresH := handler.NewVendedorHandler(vendedorSvc)
	caixaH := handler.NewCaixaHandler(caixaSvc)
	kitsH := handler.NewKitHandler(kitSvc)
	relatoriosH := handler.NewRelatorioHandler(relatorioSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: dono, vendedor, solo — declared per-endpoint
		vendas := v1.Group("/vendas")
		{
			vendas.POST("", vendasH.Registrar)
			vendas.GET("", vendasH.Listar)
			vendas.PATCH("/:id/confirmar", vendasH.Confirmar)
			vendas.PATCH("/:id/cancelar", vendasH.Cancelar)
		}

		// Despesas belong to the account owner, never to a vendedor
		despesas := v1.Group("/despesas", middleware.RequireRole("dono", "solo"))
		{
			despesas.POST("", despesasH.Criar)
			despesas.GET("", despesasH.Listar)
			despesas.GET("/total", despesasH.Total)
			despesas.PUT("/:id", despesasH.Atualizar)
			despesas.DELETE("/:id", despesasH.Remover)
		}

		// GET commission is visible to the vendedor themselves; management is dono-only
		v1.GET("/vendedores/:id/comissao", middleware.RequireRole("dono", "vendedor"), vendedoresH.Comissao)
		vendedores := v1.Group("/vendedores", middleware.RequireRole("dono"))
		{
			vendedores.POST("", vendedoresH.Criar)
			vendedores.GET("", vendedoresH.Listar)
			vendedores.PUT("/:id", vendedoresH.Atualizar)
		}

		v1.GET("/produtos", produtosH.Listar)
		v1.GET("/produtos/estoque-baixo", produtosH.EstoqueBaixo)
		v1.GET("/produtos/:id/movimentos", produtosH.Movimentos)
		prods := v1.Group("/produtos", middleware.RequireRole("dono", "solo"))
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.PATCH("/:id/estoque", produtosH.AjustarEstoque)
		}

		kits := v1.Group("/kits")
		{
			kits.POST("", middleware.RequireRole("dono"), kitsH.Montar)
			kits.PATCH("/:id/devolver", middleware.RequireRole("dono"), kitsH.Devolver)
			kits.GET("/vendedor/:vendedorId", middleware.RequireRole("dono", "vendedor"), kitsH.Listar)
		}

		caixa := v1.Group("/caixa")
		{
			caixa.POST("/abrir", caixaH.Abrir)
			caixa.POST("/fechar", caixaH.Fechar)
			caixa.POST("/movimento", caixaH.RegistrarMovimento)
			caixa.GET("/ativa", caixaH.Ativa)
			caixa.GET("/historico", caixaH.Historico)
		}

		relatorios := v1.Group("/relatorios")
		{
			relatorios.GET("/resumo", relatoriosH.Resumo)
			relatorios.GET("/vendas.csv", middleware.RequireRole("dono", "solo"), relatoriosH.VendasCSV)
			relatorios.GET("/resumo.csv", middleware.RequireRole("dono", "solo"), relatoriosH.ResumoCSV)
			relatorios.GET("/vendas.pdf", middleware.RequireRole("dono", "solo"), relatoriosH.PDF)
			relatorios.GET("/usuarios.csv", middleware.RequireRole("dono"), relatoriosH.UsuariosCSV)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/hoje", dashboardH.Hoje)
			dashboard.GET("/periodo", dashboardH.Periodo)
		}

		usuarios := v1.Group("/usuarios", middleware.RequireRole("dono"))
		{
			usuarios.POST("", authH.CriarUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.AtualizarUsuario)
			usuarios.DELETE("/:id", authH.DesativarUsuario)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
