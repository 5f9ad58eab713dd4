// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"farmledger/internal/domain/batch"
	"farmledger/internal/domain/chickout"
	"farmledger/internal/domain/closing"
	"farmledger/internal/domain/dailybalance"
	"farmledger/internal/domain/events"
	"farmledger/internal/domain/expense"
	"farmledger/internal/domain/forecast"
	"farmledger/internal/domain/incident"
	"farmledger/internal/domain/payroll"
	"farmledger/internal/domain/period"
	"farmledger/internal/domain/reports"
	"farmledger/internal/domain/section"
	"farmledger/internal/infrastructure/http/v1/handlers"
	"farmledger/internal/infrastructure/http/v1/middleware"
	"farmledger/internal/infrastructure/storage/postgres"
	"farmledger/internal/infrastructure/storage/postgres/farm_repo"
	"farmledger/internal/infrastructure/storage/postgres/report_repo"
	"farmledger/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool        *postgres.Pool
	TxManager   *postgres.TxManager
	Logger      *logger.Logger
	TokenParser *middleware.TokenParser
	Publisher   events.Publisher
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.Recovery())
	router.Use(middleware.ErrorHandler())

	// Health endpoints (no auth required)
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	// Repositories share one transaction manager; a service call that opens
	// a transaction carries it to every repo it touches via the context.
	periodRepo := farm_repo.NewPeriodRepo(cfg.TxManager)
	sectionRepo := farm_repo.NewSectionRepo(cfg.TxManager)
	batchRepo := farm_repo.NewBatchRepo(cfg.TxManager)
	balanceRepo := farm_repo.NewDailyBalanceRepo(cfg.TxManager)
	chickOutRepo := farm_repo.NewChickOutRepo(cfg.TxManager)
	expenseRepo := farm_repo.NewExpenseRepo(cfg.TxManager)
	incidentRepo := farm_repo.NewIncidentRepo(cfg.TxManager)
	payrollRepo := farm_repo.NewPayrollRepo(cfg.TxManager)
	priceRepo := farm_repo.NewForecastPriceRepo(cfg.TxManager)
	reportRepo := report_repo.NewReportRepo(cfg.TxManager)

	periodSvc := period.NewService(periodRepo, cfg.Publisher)
	sectionSvc := section.NewService(sectionRepo, periodRepo)
	batchSvc := batch.NewService(batchRepo, sectionRepo, periodRepo, balanceRepo, cfg.TxManager, cfg.Publisher)
	balanceGuard := batch.NewBalanceGuard(batchRepo, sectionRepo)
	balanceSvc := dailybalance.NewService(balanceRepo, balanceGuard, expenseRepo, cfg.TxManager, cfg.Publisher)
	expenseSvc := expense.NewService(expenseRepo, periodRepo, cfg.Publisher)
	incidentSvc := incident.NewService(incidentRepo, periodRepo, expenseRepo, cfg.TxManager, cfg.Publisher)
	payrollSvc := payroll.NewService(payrollRepo, periodRepo, expenseRepo, cfg.TxManager)
	forecastSvc := forecast.NewService(priceRepo, periodRepo, sectionRepo, batchRepo, balanceRepo, expenseRepo, cfg.TxManager, cfg.Publisher)
	chickOutSvc := chickout.NewService(chickOutRepo, batchRepo, sectionRepo, periodRepo, balanceSvc, priceRepo, cfg.TxManager, cfg.Publisher)
	closingSvc := closing.NewService(periodRepo, sectionRepo, batchRepo, chickOutRepo, incidentRepo, balanceRepo, payrollSvc, cfg.TxManager, cfg.Publisher)
	reportsSvc := reports.NewService(reportRepo, periodRepo, batchRepo, chickOutRepo, balanceRepo, expenseRepo, closingSvc)

	periodHandler := handlers.NewPeriodHandler(periodSvc, closingSvc)
	sectionHandler := handlers.NewSectionHandler(sectionSvc, forecastSvc)
	batchHandler := handlers.NewBatchHandler(batchSvc, balanceSvc, closingSvc, reportsSvc)
	chickOutHandler := handlers.NewChickOutHandler(chickOutSvc)
	expenseHandler := handlers.NewExpenseHandler(expenseSvc)
	incidentHandler := handlers.NewIncidentHandler(incidentSvc)
	payrollHandler := handlers.NewPayrollHandler(payrollSvc)
	forecastHandler := handlers.NewForecastHandler(forecastSvc)
	reportHandler := handlers.NewReportHandler(reportsSvc)

	// API v1 (JWT required)
	api := router.Group("/api/v1")
	api.Use(middleware.Auth(cfg.TokenParser))
	{
		periods := api.Group("/periods")
		{
			periods.POST("", periodHandler.Create)
			periods.GET("", periodHandler.List)
			periods.GET("/:id", periodHandler.Get)
			periods.PATCH("/:id", periodHandler.Update)
			periods.POST("/:id/close", periodHandler.Close)

			periods.POST("/:id/expenses", expenseHandler.Add)
			periods.GET("/:id/expenses", expenseHandler.List)
			periods.GET("/:id/expenses/totals", expenseHandler.Totals)

			periods.GET("/:id/incidents", incidentHandler.ListByPeriod)

			periods.POST("/:id/salaries", payrollHandler.Assign)
			periods.POST("/:id/salaries/advances", payrollHandler.Advance)

			periods.GET("/:id/revenue", reportHandler.Revenue)
			periods.GET("/:id/pl", reportHandler.PL)
			periods.GET("/:id/kpi", reportHandler.KPI)
		}

		sections := api.Group("/sections")
		{
			sections.POST("", sectionHandler.Create)
			sections.GET("", sectionHandler.List)
			sections.GET("/:id", sectionHandler.Get)
			sections.POST("/:id/link-period", sectionHandler.LinkPeriod)
			sections.GET("/:id/forecast", sectionHandler.Forecast)
			sections.POST("/:id/simulate-sale", sectionHandler.SimulateSale)
		}

		batches := api.Group("/batches")
		{
			batches.POST("", batchHandler.Create)
			batches.GET("/:id", batchHandler.Get)
			batches.POST("/:id/close", batchHandler.Close)
			batches.POST("/:id/daily-report", batchHandler.DailyReport)
			batches.GET("/:id/balances", batchHandler.Balances)
			batches.GET("/:id/chick-outs", chickOutHandler.ListByBatch)
			batches.GET("/:id/summary", batchHandler.Summary)
		}

		chickOuts := api.Group("/chick-outs")
		{
			chickOuts.POST("", chickOutHandler.Create)
			chickOuts.GET("/:id", chickOutHandler.Get)
			chickOuts.POST("/:id/complete", chickOutHandler.Complete)
		}

		incidents := api.Group("/incidents")
		{
			incidents.POST("", incidentHandler.Report)
			incidents.POST("/:id/resolve", incidentHandler.Resolve)
		}

		api.POST("/forecast/prices", forecastHandler.SetPrice)
	}

	return router
}
