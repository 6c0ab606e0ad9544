package entity

import (
	"database/sql"
	"time"

	"github.com/raffler-space/backend/pkg/enum"
)

type RaffleStatus string

var (
	RaffleDraft     = enum.New(RaffleStatus("draft"))
	RaffleActive    = enum.New(RaffleStatus("active"))
	RafflePending   = enum.New(RaffleStatus("pending"))
	RaffleDrawing   = enum.New(RaffleStatus("drawing"))
	RaffleCompleted = enum.New(RaffleStatus("completed"))
	RaffleRefunding = enum.New(RaffleStatus("refunding"))
	RaffleRefunded  = enum.New(RaffleStatus("refunded"))
	RaffleCancelled = enum.New(RaffleStatus("cancelled"))
)

type Raffle struct {
	Base

	Name             string
	Description      string
	PrizeDescription string

	// Chain names the network this raffle is (or will be) deployed on. It
	// references Blockchain.Name.
	Chain string

	// ContractRaffleID is the raffle index assigned by the smart contract.
	// It stays null until the raffle is deployed on-chain.
	ContractRaffleID sql.NullInt64 `gorm:"index"`

	// TicketPrice is denominated in whole stable-coin units.
	TicketPrice float64
	MaxTickets  int64

	// NFTContract is the prize collection address passed to the contract at
	// deploy time. Empty for cash-prize raffles.
	NFTContract string

	// TicketsSold mirrors the on-chain sold counter. The contract value wins
	// whenever it is reachable.
	TicketsSold int64

	Status        RaffleStatus `gorm:"index"`
	DrawDate      time.Time
	LaunchTime    sql.NullTime
	WinnerAddress string
	DrawTxHash    string
	CompletedAt   sql.NullTime

	ImageURL      string
	GalleryImages Array[string]
	DisplayOrder  int
	IsVisible     bool
}
