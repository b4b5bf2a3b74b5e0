package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/channabasavaballolli/Edu-Pay/internal/domain"
	"github.com/channabasavaballolli/Edu-Pay/pkg/utils"
)

func (c *Client) ListFees(ctx context.Context) ([]domain.FeeComponent, error) {
	var rows []backendFee
	if err := c.do(ctx, "list_fees", http.MethodGet, "/fees", nil, nil, &rows); err != nil {
		return nil, err
	}

	fees := make([]domain.FeeComponent, 0, len(rows))
	for _, row := range rows {
		fees = append(fees, normalizeFee(row))
	}
	return fees, nil
}

func (c *Client) CreateFee(ctx context.Context, in domain.FeeInput) (*domain.FeeComponent, error) {
	amount := utils.ToSubunits(in.Amount)
	mandatory := in.Mandatory
	payload := feePayload{Component: in.Component, Amount: &amount, Mandatory: &mandatory}

	var row backendFee
	if err := c.do(ctx, "create_fee", http.MethodPost, "/fees", nil, payload, &row); err != nil {
		return nil, err
	}
	fee := normalizeFee(row)
	return &fee, nil
}

func (c *Client) UpdateFee(ctx context.Context, id string, patch domain.FeePatch) (*domain.FeeComponent, error) {
	payload := feePayload{Mandatory: patch.Mandatory}
	if patch.Component != nil {
		payload.Component = *patch.Component
	}
	if patch.Amount != nil {
		amount := utils.ToSubunits(*patch.Amount)
		payload.Amount = &amount
	}

	var row backendFee
	if err := c.do(ctx, "update_fee", http.MethodPut, "/fees/"+url.PathEscape(id), nil, payload, &row); err != nil {
		return nil, err
	}
	fee := normalizeFee(row)
	if fee.ID == "" {
		fee.ID = id
	}
	return &fee, nil
}

func (c *Client) DeleteFee(ctx context.Context, id string) error {
	return c.do(ctx, "delete_fee", http.MethodDelete, "/fees/"+url.PathEscape(id), nil, nil, nil)
}
