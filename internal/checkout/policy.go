package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sneakerscr/storefront-backend/pkg/config"
	pkgerrors "github.com/sneakerscr/storefront-backend/pkg/errors"
)

// CouponPolicy resolves coupon codes to fractional discount rates. The
// table is injected from config so campaigns change without a deploy.
type CouponPolicy struct {
	table map[string]decimal.Decimal
}

// NewCouponPolicy wraps the configured coupon table.
func NewCouponPolicy(table map[string]decimal.Decimal) *CouponPolicy {
	if table == nil {
		table = map[string]decimal.Decimal{}
	}
	return &CouponPolicy{table: table}
}

// Resolve matches the code case-insensitively and returns its rate.
// Unknown codes are a validation error; the blank code means no coupon and
// resolves to zero.
func (p *CouponPolicy) Resolve(code string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	if pct, ok := p.table[strings.ToUpper(trimmed)]; ok {
		return pct, nil
	}
	return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "invalid coupon code")
}

// ShippingPolicy holds the fixed shipping menu. The first option is the
// default selection.
type ShippingPolicy struct {
	options []config.ShippingOption
}

// NewShippingPolicy wraps the configured shipping table.
func NewShippingPolicy(options []config.ShippingOption) *ShippingPolicy {
	return &ShippingPolicy{options: options}
}

// Options returns the menu in configured order.
func (p *ShippingPolicy) Options() []config.ShippingOption {
	out := make([]config.ShippingOption, len(p.options))
	copy(out, p.options)
	return out
}

// Resolve finds the option by id; the blank id selects the default.
func (p *ShippingPolicy) Resolve(id string) (config.ShippingOption, error) {
	if len(p.options) == 0 {
		return config.ShippingOption{}, pkgerrors.New(pkgerrors.CodeInternal, "no shipping options configured")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return p.options[0], nil
	}
	for _, opt := range p.options {
		if opt.ID == trimmed {
			return opt, nil
		}
	}
	return config.ShippingOption{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping option")
}
