package handlers

import (
	"time"

	"github.com/jmoiron/sqlx"

	"bytebazaar/internal/config"
	"bytebazaar/internal/rates"
	"bytebazaar/internal/repos"
	"bytebazaar/internal/services"
)

type Deps struct {
	ProductHandler *ProductHandler
	OrderHandler   *OrderHandler
	RedeemHandler  *RedeemHandler
	RatesHandler   *RatesHandler
	AdminHandler   *AdminHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	prodRepo := repos.NewProductRepo(db)
	stockRepo := repos.NewStockRepo(db)
	orderRepo := repos.NewOrderRepo(db)
	redeemRepo := repos.NewRedeemRepo(db)
	payRepo := repos.NewPaymentRepo(db)

	catalogSvc := services.NewCatalogService(prodRepo, time.Now)
	stockSvc := services.NewStockService(stockRepo)
	orderSvc := services.NewOrderService(orderRepo, prodRepo, stockRepo, stockSvc, redeemRepo)
	redeemSvc := services.NewRedeemService(redeemRepo)
	rateSvc := services.NewRateService(cfg.RateBase, cfg.RateQuote, rates.ERAPI{}, rates.Frankfurter{})

	return &Deps{
		ProductHandler: &ProductHandler{Catalog: catalogSvc, Stock: stockSvc},
		OrderHandler:   &OrderHandler{Order: orderSvc, Catalog: catalogSvc, FilesDir: cfg.FilesDir},
		RedeemHandler:  &RedeemHandler{Redeem: redeemSvc},
		RatesHandler:   &RatesHandler{Rates: rateSvc},
		AdminHandler:   &AdminHandler{Order: orderSvc, Orders: orderRepo, Stock: stockRepo, Payments: payRepo},
	}
}
