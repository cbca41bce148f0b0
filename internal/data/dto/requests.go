package dto

import (
	"math/big"
	"strconv"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/go-openapi/validate"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/units"
)

const (
	// MaxBatchSize bounds a single batch request; each item takes at least one pause.
	MaxBatchSize = 100

	maxMemoLength = 256
)

// TransferRequest is the body of a transfer. Address and amount validity are left to the
// orchestrator so failures carry their classified kind.
type TransferRequest struct {

	// recipient address
	// Required: true
	To *string `json:"to"`

	// amount in ether
	// Required: true
	Amount *string `json:"amount"`

	// gas limit, 0 estimates
	GasLimit uint64 `json:"gasLimit,omitempty"`

	// gas price in gwei, empty uses network fee data
	GasPriceGwei string `json:"gasPriceGwei,omitempty"`

	// memo, logged only
	// Max Length: 256
	Memo string `json:"memo,omitempty"`

	gasPrice *big.Int
}

// Validate validates this transfer request
func (m *TransferRequest) Validate(formats strfmt.Registry) error {
	var res []error

	if err := validate.Required("to", "body", m.To); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("amount", "body", m.Amount); err != nil {
		res = append(res, err)
	}

	if err := m.validateGasPriceGwei(formats); err != nil {
		res = append(res, err)
	}

	if err := validate.MaxLength("memo", "body", m.Memo, maxMemoLength); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

func (m *TransferRequest) validateGasPriceGwei(_ strfmt.Registry) error {
	if swag.IsZero(m.GasPriceGwei) {
		return nil
	}

	gasPrice, err := units.ParseGwei(m.GasPriceGwei)
	if err != nil || gasPrice.Sign() <= 0 {
		return errors.InvalidType("gasPriceGwei", "body", "positive decimal", m.GasPriceGwei)
	}
	m.gasPrice = gasPrice

	return nil
}

func (m *TransferRequest) ToRequest() transfer.Request {
	return transfer.Request{
		To:       swag.StringValue(m.To),
		Amount:   swag.StringValue(m.Amount),
		GasLimit: m.GasLimit,
		GasPrice: m.gasPrice,
		Memo:     m.Memo,
	}
}

type BatchTransferRequest struct {

	// transfers, sent in order
	// Required: true
	// Min Items: 1
	// Max Items: 100
	Transfers []*TransferRequest `json:"transfers"`
}

// Validate validates this batch transfer request
func (m *BatchTransferRequest) Validate(formats strfmt.Registry) error {
	if err := validate.Required("transfers", "body", m.Transfers); err != nil {
		return err
	}

	size := int64(len(m.Transfers))
	if err := validate.MinItems("transfers", "body", size, 1); err != nil {
		return err
	}
	if err := validate.MaxItems("transfers", "body", size, MaxBatchSize); err != nil {
		return err
	}

	for i := range m.Transfers {
		name := "transfers" + "." + strconv.Itoa(i)

		if err := validate.Required(name, "body", m.Transfers[i]); err != nil {
			return err
		}

		if err := m.Transfers[i].Validate(formats); err != nil {
			if ve, ok := err.(*errors.Validation); ok {
				return ve.ValidateName(name)
			} else if ce, ok := err.(*errors.CompositeError); ok {
				return ce.ValidateName(name)
			}
			return err
		}
	}

	return nil
}

func (m *BatchTransferRequest) ToRequests() []transfer.Request {
	reqs := make([]transfer.Request, 0, len(m.Transfers))
	for _, t := range m.Transfers {
		reqs = append(reqs, t.ToRequest())
	}

	return reqs
}

type EstimateRequest struct {

	// recipient address
	// Required: true
	To *string `json:"to"`

	// amount in ether
	// Required: true
	Amount *string `json:"amount"`
}

// Validate validates this estimate request
func (m *EstimateRequest) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("to", "body", m.To); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("amount", "body", m.Amount); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

type ApprovalRequest struct {

	// operator address
	// Required: true
	Operator *string `json:"operator"`

	// grant (true) or revoke (false)
	// Required: true
	Approved *bool `json:"approved"`
}

// Validate validates this approval request
func (m *ApprovalRequest) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("operator", "body", m.Operator); err != nil {
		res = append(res, err)
	}

	if err := validate.Required("approved", "body", m.Approved); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

type ApprovalQuery struct {
	Operator string `query:"operator"`
	Account  string `query:"account"`
}

// Validate validates this approval query
func (m *ApprovalQuery) Validate(_ strfmt.Registry) error {
	if err := validate.RequiredString("operator", "query", m.Operator); err != nil {
		return err
	}

	return nil
}
