package tenbis

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	internalTypes "github.com/orshemtov/auto10bis/internal/types"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// budgetField binds an on-screen label to its BudgetInfo slot and the
// layout relation holding the amount. The report renders each card as
// an amount node immediately followed by its label node.
type budgetField struct {
	label    string
	relation Relation
	assign   func(*BudgetInfo, decimal.Decimal)
}

var budgetFields = []budgetField{
	{"Monthly limit", internalTypes.RelationPrecedingSibling, func(b *BudgetInfo, v decimal.Decimal) { b.MonthlyLimit = v }},
	{"Daily limit", internalTypes.RelationPrecedingSibling, func(b *BudgetInfo, v decimal.Decimal) { b.DailyLimit = v }},
	{"Spent this month", internalTypes.RelationPrecedingSibling, func(b *BudgetInfo, v decimal.Decimal) { b.SpentThisMonth = v }},
	{"Spent today", internalTypes.RelationPrecedingSibling, func(b *BudgetInfo, v decimal.Decimal) { b.SpentToday = v }},
	{"Monthly balance", internalTypes.RelationPrecedingSibling, func(b *BudgetInfo, v decimal.Decimal) { b.MonthlyBalance = v }},
	{"Daily balance", internalTypes.RelationPrecedingSibling, func(b *BudgetInfo, v decimal.Decimal) { b.DailyBalance = v }},
}

// Read navigates to the transactions report and extracts the labeled
// amounts.
func (s *budgetService) Read(ctx context.Context) (*BudgetInfo, error) {
	log := s.client.logger()

	if err := s.client.page.Click(ctx, greeting, internalTypes.MenuTimeout); err != nil {
		return nil, errors.Wrap(err, "failed to open account menu")
	}

	report := Target{Role: RoleText, Name: "Transactions Report"}
	if err := s.client.page.Click(ctx, report, internalTypes.LabelTimeout); err != nil {
		return nil, errors.Wrap(err, "failed to open transactions report")
	}

	if err := s.client.page.WaitLoad(ctx); err != nil {
		return nil, errors.Wrap(err, "transactions report did not load")
	}

	budget := &BudgetInfo{}
	for _, field := range budgetFields {
		value, err := s.valueByLabel(ctx, field.label, field.relation)
		if err != nil {
			s.client.captureError(ctx, "budget", err)
			return nil, err
		}
		field.assign(budget, value)
		log.Debug("Extracted budget field", "label", field.label, "value", value.String())
	}

	log.Info("Budget report read",
		"monthly_balance", budget.MonthlyBalance.String(),
		"daily_balance", budget.DailyBalance.String())

	return budget, nil
}

// valueByLabel resolves the amount node adjacent to an exact-text
// label and parses it. A missing label fails loudly after its bounded
// wait; a silent zero here would corrupt the affordability decision.
func (s *budgetService) valueByLabel(ctx context.Context, label string, rel Relation) (decimal.Decimal, error) {
	text, err := s.client.page.TextByLabel(ctx, label, rel, internalTypes.LabelTimeout)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to locate budget label %q", label)
	}

	amount, err := ParseAmount(text)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "failed to parse amount for label %q", label)
	}

	return amount, nil
}
