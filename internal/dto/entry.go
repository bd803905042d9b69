package dto

import (
	"time"

	"github.com/aurumworks/bullion_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateStockItemRequest is one metal line of a create/update request.
type CreateStockItemRequest struct {
	StockID     string          `json:"stockID" binding:"required"`
	MetalID     string          `json:"metalID" binding:"required"`
	GrossWeight decimal.Decimal `json:"grossWeight" binding:"required"`
	Purity      decimal.Decimal `json:"purity" binding:"required"`
	Pieces      int             `json:"pieces"`
}

// CreateCashItemRequest is one money line of a create/update request.
// FX rates are captured on the line at submission time.
type CreateCashItemRequest struct {
	CurrencyCode      string          `json:"currencyCode" binding:"required"`
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	CashType          domain.CashType `json:"cashType" binding:"required"`
	BankAccountID     string          `json:"bankAccountID"`
	TransferAccountID string          `json:"transferAccountID"`
	ChequeNumber      string          `json:"chequeNumber"`
	ChequeDate        *time.Time      `json:"chequeDate"`
	VATAmount         decimal.Decimal `json:"vatAmount"`
	CardCharge        decimal.Decimal `json:"cardCharge"`
	FxRate            decimal.Decimal `json:"fxRate"`
	FxBaseRate        decimal.Decimal `json:"fxBaseRate"`
}

// CreateEntryRequest creates a voucher. Exactly one of StockItems/CashItems
// must be populated, matching the entry type.
type CreateEntryRequest struct {
	EntryType   domain.EntryType         `json:"entryType" binding:"required"`
	Status      domain.EntryStatus       `json:"status"`
	PartyID     string                   `json:"partyID" binding:"required"`
	VoucherCode string                   `json:"voucherCode" binding:"required"`
	VoucherDate time.Time                `json:"voucherDate" binding:"required"`
	Narration   string                   `json:"narration"`
	StockItems  []CreateStockItemRequest `json:"stockItems"`
	CashItems   []CreateCashItemRequest  `json:"cashItems"`
}

// UpdateEntryRequest replaces a voucher's type, date and lines. An approved
// entry is reversed before the new fields apply.
type UpdateEntryRequest struct {
	EntryType   domain.EntryType         `json:"entryType" binding:"required"`
	VoucherDate time.Time                `json:"voucherDate" binding:"required"`
	Narration   string                   `json:"narration"`
	StockItems  []CreateStockItemRequest `json:"stockItems"`
	CashItems   []CreateCashItemRequest  `json:"cashItems"`
}

// UpdateEntryStatusRequest moves a voucher between draft and approved.
type UpdateEntryStatusRequest struct {
	Status domain.EntryStatus `json:"status" binding:"required"`
}

// StockItemResponse is one metal line of an entry response.
type StockItemResponse struct {
	StockItemID string          `json:"stockItemID"`
	StockID     string          `json:"stockID"`
	MetalID     string          `json:"metalID"`
	GrossWeight decimal.Decimal `json:"grossWeight"`
	Purity      decimal.Decimal `json:"purity"`
	PureWeight  decimal.Decimal `json:"pureWeight"`
	Pieces      int             `json:"pieces"`
}

// CashItemResponse is one money line of an entry response.
type CashItemResponse struct {
	CashItemID   string           `json:"cashItemID"`
	CurrencyCode string           `json:"currencyCode"`
	Amount       decimal.Decimal  `json:"amount"`
	CashType     domain.CashType  `json:"cashType"`
	ChequeNumber string           `json:"chequeNumber,omitempty"`
	ChequeDate   *time.Time       `json:"chequeDate,omitempty"`
	FxGain       decimal.Decimal  `json:"fxGain"`
	FxLoss       decimal.Decimal  `json:"fxLoss"`
	IsPDC        bool             `json:"isPDC"`
	PDCStatus    domain.PDCStatus `json:"pdcStatus,omitempty"`
	MaturityDate *time.Time       `json:"maturityPostingDate,omitempty"`
}

// EntryResponse defines the data returned for a voucher.
type EntryResponse struct {
	EntryID     string              `json:"entryID"`
	EntryType   domain.EntryType    `json:"entryType"`
	Status      domain.EntryStatus  `json:"status"`
	PartyID     string              `json:"partyID"`
	VoucherCode string              `json:"voucherCode"`
	VoucherDate time.Time           `json:"voucherDate"`
	Narration   string              `json:"narration,omitempty"`
	StockItems  []StockItemResponse `json:"stockItems,omitempty"`
	CashItems   []CashItemResponse  `json:"cashItems,omitempty"`
	TotalAmount decimal.Decimal     `json:"totalAmount"`
	TotalWeight decimal.Decimal     `json:"totalPureWeight"`
	CreatedAt   time.Time           `json:"createdAt"`
	CreatedBy   string              `json:"createdBy"`
}

// ToEntryResponse converts a domain.Entry to an EntryResponse DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	resp := EntryResponse{
		EntryID:     e.EntryID,
		EntryType:   e.EntryType,
		Status:      e.Status,
		PartyID:     e.PartyID,
		VoucherCode: e.VoucherCode,
		VoucherDate: e.VoucherDate,
		Narration:   e.Narration,
		TotalAmount: e.TotalAmount(),
		TotalWeight: e.TotalPureWeight(),
		CreatedAt:   e.CreatedAt,
		CreatedBy:   e.CreatedBy,
	}
	for _, s := range e.StockItems {
		resp.StockItems = append(resp.StockItems, StockItemResponse{
			StockItemID: s.StockItemID,
			StockID:     s.StockID,
			MetalID:     s.MetalID,
			GrossWeight: s.GrossWeight,
			Purity:      s.Purity,
			PureWeight:  s.PureWeight,
			Pieces:      s.Pieces,
		})
	}
	for _, c := range e.CashItems {
		resp.CashItems = append(resp.CashItems, CashItemResponse{
			CashItemID:   c.CashItemID,
			CurrencyCode: c.CurrencyCode,
			Amount:       c.Amount,
			CashType:     c.CashType,
			ChequeNumber: c.ChequeNumber,
			ChequeDate:   c.ChequeDate,
			FxGain:       c.FxGain,
			FxLoss:       c.FxLoss,
			IsPDC:        c.IsPDC,
			PDCStatus:    c.PDCStatus,
			MaturityDate: c.MaturityDate,
		})
	}
	return resp
}
