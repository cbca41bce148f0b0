package nft

import (
	"context"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"github/chapool/magic-wallet/internal/transfer"
	"github/chapool/magic-wallet/internal/util"
	"github/chapool/magic-wallet/internal/wallet/address"
)

const collectionABI = `[
	{"type":"function","name":"mint","stateMutability":"payable",
	 "inputs":[{"name":"to","type":"address"}],"outputs":[]},
	{"type":"function","name":"setApprovalForAll","stateMutability":"nonpayable",
	 "inputs":[{"name":"operator","type":"address"},{"name":"approved","type":"bool"}],"outputs":[]},
	{"type":"function","name":"isApprovedForAll","stateMutability":"view",
	 "inputs":[{"name":"owner","type":"address"},{"name":"operator","type":"address"}],
	 "outputs":[{"name":"","type":"bool"}]}
]`

var ErrInvalidOperator = errors.New("invalid operator address")

// Contract submits calls to an ERC-721 collection through the transfer orchestrator.
type Contract struct {
	address      common.Address
	abi          abi.ABI
	orchestrator *transfer.Orchestrator
	mintPrice    *big.Int
}

// New binds the collection at contractAddress. mintPrice is the wei value sent with mint,
// nil for free mints.
func New(contractAddress string, orchestrator *transfer.Orchestrator, mintPrice *big.Int) (*Contract, error) {
	contract, ok := address.Parse(contractAddress)
	if !ok {
		return nil, errors.Errorf("invalid NFT contract address %q", contractAddress)
	}

	parsed, err := abi.JSON(strings.NewReader(collectionABI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse collection ABI")
	}

	if mintPrice == nil {
		mintPrice = new(big.Int)
	}

	return &Contract{
		address:      contract,
		abi:          parsed,
		orchestrator: orchestrator,
		mintPrice:    mintPrice,
	}, nil
}

func (c *Contract) Address() common.Address {
	return c.address
}

func (c *Contract) MintPrice() *big.Int {
	return new(big.Int).Set(c.mintPrice)
}

// Mint mints one token to the signer's own address.
func (c *Contract) Mint(ctx context.Context) transfer.Outcome {
	s := c.orchestrator.Signer()
	if s == nil {
		return unauthenticated("mint an NFT")
	}

	data, err := c.abi.Pack("mint", s.Address())
	if err != nil {
		return packFailure(err)
	}

	util.LogFromContext(ctx).Info().
		Str("contract", c.address.Hex()).
		Str("to", s.Address().Hex()).
		Str("value", c.mintPrice.String()).
		Msg("Minting token")

	return c.orchestrator.Submit(ctx, transfer.Call{
		To:    c.address,
		Value: c.MintPrice(),
		Data:  data,
	})
}

// SetApprovalForAll grants or revokes operator's approval over all of the signer's tokens.
func (c *Contract) SetApprovalForAll(ctx context.Context, operator string, approved bool) transfer.Outcome {
	if c.orchestrator.Signer() == nil {
		return unauthenticated("change NFT approvals")
	}

	operatorAddress, ok := address.Parse(operator)
	if !ok {
		return transfer.Outcome{
			Kind:  transfer.KindInvalidAddress,
			Error: "Invalid operator address",
		}
	}

	data, err := c.abi.Pack("setApprovalForAll", operatorAddress, approved)
	if err != nil {
		return packFailure(err)
	}

	util.LogFromContext(ctx).Info().
		Str("contract", c.address.Hex()).
		Str("operator", operatorAddress.Hex()).
		Bool("approved", approved).
		Msg("Setting approval for all")

	return c.orchestrator.Submit(ctx, transfer.Call{
		To:   c.address,
		Data: data,
	})
}

// IsApprovedForAll reports whether operator may manage account's tokens. An empty account
// means the signer's own address.
func (c *Contract) IsApprovedForAll(ctx context.Context, account string, operator string) (bool, error) {
	s := c.orchestrator.Signer()
	if s == nil {
		return false, transfer.ErrCapabilityUnavailable
	}

	owner := s.Address()
	if account != "" {
		var ok bool
		if owner, ok = address.Parse(account); !ok {
			return false, errors.Errorf("invalid account address %q", account)
		}
	}

	operatorAddress, ok := address.Parse(operator)
	if !ok {
		return false, ErrInvalidOperator
	}

	data, err := c.abi.Pack("isApprovedForAll", owner, operatorAddress)
	if err != nil {
		return false, errors.Wrap(err, "failed to pack isApprovedForAll")
	}

	contract := c.address
	out, err := s.Provider().CallContract(ctx, ethereum.CallMsg{
		From: s.Address(),
		To:   &contract,
		Data: data,
	})
	if err != nil {
		return false, err
	}

	results, err := c.abi.Unpack("isApprovedForAll", out)
	if err != nil {
		return false, errors.Wrap(err, "failed to unpack isApprovedForAll")
	}

	approved, ok := results[0].(bool)
	if !ok {
		return false, errors.New("unexpected isApprovedForAll result type")
	}

	return approved, nil
}

func unauthenticated(action string) transfer.Outcome {
	return transfer.Outcome{
		Kind:  transfer.KindUnauthenticated,
		Error: "Please sign in first to " + action,
	}
}

func packFailure(err error) transfer.Outcome {
	return transfer.Outcome{
		Kind:  transfer.KindProviderError,
		Error: "Transfer failed: " + err.Error(),
	}
}
