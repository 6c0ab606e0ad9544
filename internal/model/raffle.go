package model

import "time"

// Raffle is the unified client-facing view of a raffle: the mirror row merged
// with live contract state whenever the contract is reachable.
type Raffle struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	PrizeDescription string    `json:"prize_description"`
	Chain            string    `json:"chain"`
	ContractRaffleID *int64    `json:"contract_raffle_id,omitempty"`
	NFTContract      string    `json:"nft_contract,omitempty"`
	TicketPrice      float64   `json:"ticket_price"`
	MaxTickets       int64     `json:"max_tickets"`
	TicketsSold      int64     `json:"tickets_sold"`
	Status           string    `json:"status"`
	DrawDate         time.Time `json:"draw_date"`
	LaunchTime       time.Time `json:"launch_time,omitempty"`
	WinnerAddress    string    `json:"winner_address"`
	DrawTxHash       string    `json:"draw_tx_hash,omitempty"`
	ImageURL         string    `json:"image_url,omitempty"`
	GalleryImages    []string  `json:"gallery_images,omitempty"`
	IsActive         bool      `json:"is_active"`
	HasEnded         bool      `json:"has_ended"`

	// OnChain reports whether this view was built from a live contract read
	// or fell back to the mirror.
	OnChain bool `json:"on_chain"`
}

type GetRaffleRequest struct {
	ID string `json:"id"`
}

type GetRaffleResponse struct {
	Raffle Raffle `json:"raffle"`
}

type GetRafflesRequest struct {
	IncludeHidden bool `json:"include_hidden"`
}

type GetRafflesResponse struct {
	Raffles []Raffle `json:"raffles"`
}

type CreateRaffleRequest struct {
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	PrizeDescription string    `json:"prize_description"`
	Chain            string    `json:"chain"`
	NFTContract      string    `json:"nft_contract"`
	TicketPrice      float64   `json:"ticket_price"`
	MaxTickets       int64     `json:"max_tickets"`
	DrawDate         time.Time `json:"draw_date"`
	LaunchTime       time.Time `json:"launch_time"`
	ImageURL         string    `json:"image_url"`
}

type CreateRaffleResponse struct {
	ID string `json:"id"`
}

type UpdateRaffleRequest struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	PrizeDescription string   `json:"prize_description"`
	ImageURL         string   `json:"image_url"`
	GalleryImages    []string `json:"gallery_images"`
	DisplayOrder     int      `json:"display_order"`
	IsVisible        bool     `json:"is_visible"`
}

type UpdateRaffleResponse struct{}

type ActivateRaffleRequest struct {
	ID string `json:"id"`
}

type ActivateRaffleResponse struct {
	ContractRaffleID int64  `json:"contract_raffle_id"`
	TxHash           string `json:"tx_hash"`
}

type SelectWinnerRequest struct {
	ID string `json:"id"`
}

type SelectWinnerResponse struct {
	TxHash string `json:"tx_hash"`
}

type ClaimPrizeRequest struct {
	ID string `json:"id"`
}

type ClaimPrizeResponse struct {
	TxHash string `json:"tx_hash"`
}

type WithdrawFeesRequest struct {
	Chain string `json:"chain"`
}

type WithdrawFeesResponse struct {
	TxHash string `json:"tx_hash"`
}
