package repo

import (
	"github.com/dealgora/dealgora/internal/collab"
	"github.com/dealgora/dealgora/internal/pg"
	dealrepo "github.com/dealgora/dealgora/internal/repo/deal-repo"
	listingrepo "github.com/dealgora/dealgora/internal/repo/listing-repo"
	reminderrepo "github.com/dealgora/dealgora/internal/repo/reminder-repo"
	walletrepo "github.com/dealgora/dealgora/internal/repo/wallet-repo"
	"github.com/dealgora/dealgora/internal/service/dealservice"
	"github.com/dealgora/dealgora/internal/service/escrowservice"
	"github.com/dealgora/dealgora/internal/worker/reminder"
)

type Repositories struct {
	DealRepo     dealservice.DealRepo
	ReminderRepo reminder.ReminderRepo
	WalletRepo   escrowservice.WalletRepo
	ListingRepo  collab.ListingSource
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	dealRepo := dealrepo.New(conn, txManager)
	reminderRepo := reminderrepo.New(conn)
	walletRepo := walletrepo.New(conn, txManager)
	listingRepo := listingrepo.New(conn)

	return &Repositories{
		DealRepo:     dealRepo,
		ReminderRepo: reminderRepo,
		WalletRepo:   walletRepo,
		ListingRepo:  listingRepo,
	}
}
