package queries

import (
	"context"
	"time"

	"warehouse-booking/internal/domain/pricing"
	"warehouse-booking/internal/domain/reservation"
	"warehouse-booking/internal/infra"
	"warehouse-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=unit.go -destination=../../../tests/mock/queries/unit.go -package=queriesmock

var ErrUnitNotFound = errs.NotFound(errs.New("unit not found"))

type UnitReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UnitView, error)
}

type UnitQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*UnitView, error)
	// Quote runs the price calculator for a window without booking it.
	Quote(ctx context.Context, unitID uuid.UUID, start, end time.Time) (*QuoteView, error)
}

type unitQueriesImpl struct {
	repo UnitReadStore
}

func NewUnitQueries(repo UnitReadStore) UnitQueries {
	return &unitQueriesImpl{repo: repo}
}

func (q *unitQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*UnitView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *unitQueriesImpl) Quote(ctx context.Context, unitID uuid.UUID, start, end time.Time) (*QuoteView, error) {
	period, err := reservation.NewPeriod(start, end)
	if err != nil {
		return nil, errs.Validation(err)
	}

	view, err := q.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	rules, err := PricingRulesFromView(view.Pricing)
	if err != nil {
		return nil, err
	}

	quote := pricing.QuotePeriod(rules, period.Start(), period.End())
	result := &QuoteView{
		UnitID:             unitID,
		StartAt:            period.Start(),
		EndAt:              period.End(),
		Units:              quote.Units,
		UnitPrice:          quote.UnitPrice,
		Base:               quote.Base,
		DiscountPercentage: quote.DiscountPercent,
		Total:              quote.Total,
	}
	if quote.Applied() {
		ruleID := quote.RuleID
		result.Tier = quote.Tier.String()
		result.RuleID = &ruleID
	}
	return result, nil
}

// PricingRulesFromView rebuilds calculator rules from stored pricing rows.
// Every rule in a UnitView is active.
func PricingRulesFromView(views []PricingRuleView) ([]pricing.Rule, error) {
	rules := make([]pricing.Rule, 0, len(views))
	for _, v := range views {
		tier, err := pricing.NewTier(v.Tier)
		if err != nil {
			return nil, errs.Wrap(err, "stored pricing rule")
		}
		rule, err := pricing.NewRule(v.ID, tier, v.Price, v.DiscountPercentage, true, v.CreatedAt)
		if err != nil {
			return nil, errs.Wrap(err, "stored pricing rule")
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
