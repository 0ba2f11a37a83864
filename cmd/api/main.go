package main

import (
	"log/slog"
	"os"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "p2p-lending-ledger/internal/adapter/http"
	"p2p-lending-ledger/internal/adapter/middleware"
	"p2p-lending-ledger/internal/adapter/repository/mysql"
	"p2p-lending-ledger/internal/config"
	"p2p-lending-ledger/internal/infrastructure/cache"
	"p2p-lending-ledger/internal/infrastructure/db"
	borroweruc "p2p-lending-ledger/internal/usecase/borrower"
	lenderuc "p2p-lending-ledger/internal/usecase/lender"
	loanuc "p2p-lending-ledger/internal/usecase/loan"
	portfoliouc "p2p-lending-ledger/internal/usecase/portfolio"
	repaymentuc "p2p-lending-ledger/internal/usecase/repayment"
	"p2p-lending-ledger/pkg/logging"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		slog.Error("mysql connect failed", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		slog.Error("redis connect failed", "error", err)
		os.Exit(1)
	}

	lenderRepo := mysql.NewLenderRepository(gdb)
	borrowerRepo := mysql.NewBorrowerRepository(gdb)
	txn := mysql.NewGormUoW(gdb)

	handlers := httpadp.Handlers{
		Health:     httpadp.NewHandler(),
		Lenders:    httpadp.NewLenderHandler(lenderuc.NewUsecase(lenderRepo)),
		Borrowers:  httpadp.NewBorrowerHandler(borroweruc.NewUsecase(borrowerRepo)),
		Loans:      httpadp.NewLoanHandler(loanuc.NewUsecase(borrowerRepo, txn)),
		Repayments: httpadp.NewRepaymentHandler(repaymentuc.NewUsecase(txn)),
		Portfolio:  httpadp.NewPortfolioHandler(portfoliouc.NewUsecase(lenderRepo, borrowerRepo, rdb, cfg.PortfolioCacheTTL)),
		Calculator: httpadp.NewCalculatorHandler(),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.Idempotency(rdb, cfg.IdempTTL))
	e.Validator = httpadp.NewValidator()

	httpadp.Register(e, handlers)

	addr := ":" + cfg.AppPort
	slog.Info("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
