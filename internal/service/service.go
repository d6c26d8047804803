package service

import (
	"github.com/dealgora/dealgora/internal/config"
	"github.com/dealgora/dealgora/internal/fee"
	"github.com/dealgora/dealgora/internal/pg"
	"github.com/dealgora/dealgora/internal/repo"
	"github.com/dealgora/dealgora/internal/service/dealservice"
	"github.com/dealgora/dealgora/internal/service/escrowservice"
)

type Services struct {
	DealService   *dealservice.Service
	EscrowService *escrowservice.Service
}

func New(cfg *config.Config, repo *repo.Repositories, txManager pg.TXManager) *Services {
	escrowService := escrowservice.New(repo.WalletRepo, repo.DealRepo, txManager, FeePolicy(cfg))
	dealService := dealservice.New(repo.DealRepo, escrowService, repo.ListingRepo, txManager, dealservice.Deadlines{
		Idle:        cfg.IdleTimeout,
		Creative:    cfg.CreativeDeadline,
		AdminReview: cfg.AdminReviewDeadline,
		Payment:     cfg.PaymentWindow,
	})

	return &Services{
		DealService:   dealService,
		EscrowService: escrowService,
	}
}

// FeePolicy translates the environment configuration into the pure fee
// policy the engine consumes.
func FeePolicy(cfg *config.Config) fee.Policy {
	serviceMode := fee.ModeFixed
	if cfg.ServiceFeeMode == "proportional" {
		serviceMode = fee.ModeProportional
	}
	networkMode := fee.ModeFixed
	if cfg.NetworkFeeMode == "estimated" {
		networkMode = fee.ModeEstimated
	}
	return fee.Policy{
		Enabled:        cfg.FeesEnabled,
		ServiceFeeMode: serviceMode,
		ServiceFeeBPS:  cfg.ServiceFeeBPS,
		ServiceFixed:   cfg.ServiceFeeFixed,
		ServiceFeeMin:  cfg.ServiceFeeMinNano,
		ServiceFeeMax:  cfg.ServiceFeeMaxNano,
		NetworkFeeMode: networkMode,
		NetworkFixed:   cfg.NetworkFeeNano,
		NetworkFeeMin:  cfg.NetworkFeeMinNano,
		NetworkFeeMax:  cfg.NetworkFeeMaxNano,
		MinPayoutNano:  cfg.MinPayoutNano,
	}
}
