package dto

import (
	"strconv"

	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/units"
)

// Outcome is the wire form of a transfer.Outcome. Amounts are decimal ether strings.
type Outcome struct {
	Success     bool   `json:"success"`
	TxHash      string `json:"txHash,omitempty"`
	BlockNumber uint64 `json:"blockNumber,omitempty"`
	GasUsed     uint64 `json:"gasUsed,omitempty"`
	Fee         string `json:"fee,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Error       string `json:"error,omitempty"`

	// Format: date-time
	SubmittedAt *strfmt.DateTime `json:"submittedAt,omitempty"`

	// Format: date-time
	ConfirmedAt *strfmt.DateTime `json:"confirmedAt,omitempty"`
}

func NewOutcome(o transfer.Outcome) *Outcome {
	out := &Outcome{
		Success: o.Success,
		Kind:    string(o.Kind),
		Error:   o.Error,
	}

	if o.Success {
		out.TxHash = o.TxHash.Hex()
	}
	if o.Receipt != nil {
		if o.Receipt.BlockNumber != nil {
			out.BlockNumber = o.Receipt.BlockNumber.Uint64()
		}
		out.GasUsed = o.Receipt.GasUsed
	}
	if fee := o.Fee(); fee != nil {
		out.Fee = units.FormatEther(fee)
	}
	if !o.SubmittedAt.IsZero() {
		submittedAt := strfmt.DateTime(o.SubmittedAt)
		out.SubmittedAt = &submittedAt
	}
	if !o.ConfirmedAt.IsZero() {
		confirmedAt := strfmt.DateTime(o.ConfirmedAt)
		out.ConfirmedAt = &confirmedAt
	}

	return out
}

func NewOutcomes(outcomes []transfer.Outcome) []*Outcome {
	out := make([]*Outcome, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, NewOutcome(o))
	}

	return out
}

// Validate validates this outcome. Exactly one of txHash and error is set.
func (m *Outcome) Validate(formats strfmt.Registry) error {
	var res []error

	if m.Success {
		if err := validate.RequiredString("txHash", "body", m.TxHash); err != nil {
			res = append(res, err)
		}
	} else if err := validate.RequiredString("error", "body", m.Error); err != nil {
		res = append(res, err)
	}

	if m.SubmittedAt != nil {
		if err := validate.FormatOf("submittedAt", "body", "date-time", m.SubmittedAt.String(), formats); err != nil {
			res = append(res, err)
		}
	}

	if m.ConfirmedAt != nil {
		if err := validate.FormatOf("confirmedAt", "body", "date-time", m.ConfirmedAt.String(), formats); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// CostEstimate is the wire form of a transfer.CostEstimate.
type CostEstimate struct {
	Amount       string `json:"amount"`
	GasUnits     uint64 `json:"gasUnits"`
	GasPriceGwei string `json:"gasPriceGwei"`
	GasFee       string `json:"gasFee"`
	Total        string `json:"total"`
}

func NewCostEstimate(e *transfer.CostEstimate) *CostEstimate {
	return &CostEstimate{
		Amount:       units.FormatEther(e.Amount),
		GasUnits:     e.GasUnits,
		GasPriceGwei: units.FormatGwei(e.GasPrice),
		GasFee:       units.FormatEther(e.GasFee),
		Total:        units.FormatEther(e.Total),
	}
}

// Validate validates this cost estimate
func (m *CostEstimate) Validate(_ strfmt.Registry) error {
	var res []error

	for name, value := range map[string]string{
		"amount":       m.Amount,
		"gasPriceGwei": m.GasPriceGwei,
		"gasFee":       m.GasFee,
		"total":        m.Total,
	} {
		if err := validate.RequiredString(name, "body", value); err != nil {
			res = append(res, err)
		}
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

type BatchTransferResponse struct {
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Outcomes  []*Outcome `json:"outcomes"`
}

func NewBatchTransferResponse(outcomes []transfer.Outcome) *BatchTransferResponse {
	res := &BatchTransferResponse{Outcomes: NewOutcomes(outcomes)}
	for _, o := range outcomes {
		if o.Success {
			res.Succeeded++
		} else {
			res.Failed++
		}
	}

	return res
}

// Validate validates this batch transfer response
func (m *BatchTransferResponse) Validate(formats strfmt.Registry) error {
	if err := validate.Required("outcomes", "body", m.Outcomes); err != nil {
		return err
	}

	if m.Succeeded+m.Failed != len(m.Outcomes) {
		return errors.New(422, "succeeded and failed must add up to %d outcomes", len(m.Outcomes))
	}

	for i := range m.Outcomes {
		name := "outcomes" + "." + strconv.Itoa(i)

		if err := validate.Required(name, "body", m.Outcomes[i]); err != nil {
			return err
		}

		if err := m.Outcomes[i].Validate(formats); err != nil {
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

type BalanceResponse struct {
	Address string `json:"address"`
	Balance string `json:"balance"`
}

// Validate validates this balance response
func (m *BalanceResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.RequiredString("address", "body", m.Address); err != nil {
		res = append(res, err)
	}

	if err := validate.RequiredString("balance", "body", m.Balance); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

type AddressResponse struct {
	Address string `json:"address"`
	Network string `json:"network,omitempty"`
	ChainID string `json:"chainId,omitempty"`
}

// Validate validates this address response
func (m *AddressResponse) Validate(_ strfmt.Registry) error {
	if err := validate.RequiredString("address", "body", m.Address); err != nil {
		return err
	}

	return nil
}

type ApprovalResponse struct {
	Account  string `json:"account,omitempty"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

// Validate validates this approval response
func (m *ApprovalResponse) Validate(_ strfmt.Registry) error {
	if err := validate.RequiredString("operator", "body", m.Operator); err != nil {
		return err
	}

	return nil
}
