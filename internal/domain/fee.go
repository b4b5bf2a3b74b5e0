package domain

import (
	"github.com/shopspring/decimal"

	customError "github.com/channabasavaballolli/Edu-Pay/pkg/errors"
)

// FeeComponent is one payable line item, amount in rupees.
type FeeComponent struct {
	ID        string          `json:"id"`
	Component string          `json:"component"`
	Amount    decimal.Decimal `json:"amount"`
	Mandatory bool            `json:"mandatory"`
}

type FeeInput struct {
	Component string          `json:"component" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Mandatory bool            `json:"mandatory"`
}

type FeePatch struct {
	Component *string          `json:"component,omitempty"`
	Amount    *decimal.Decimal `json:"amount,omitempty"`
	Mandatory *bool            `json:"mandatory,omitempty"`
}

// Apply returns f with the patch applied.
func (p FeePatch) Apply(f FeeComponent) FeeComponent {
	if p.Component != nil {
		f.Component = *p.Component
	}
	if p.Amount != nil {
		f.Amount = *p.Amount
	}
	if p.Mandatory != nil {
		f.Mandatory = *p.Mandatory
	}
	return f
}

// FeeSelection tracks which components a payer intends to pay for.
// Mandatory components are selected on construction and stay selected.
type FeeSelection struct {
	components []FeeComponent
	selected   map[string]bool
}

func NewFeeSelection(components []FeeComponent) *FeeSelection {
	s := &FeeSelection{
		components: append([]FeeComponent(nil), components...),
		selected:   make(map[string]bool, len(components)),
	}
	for _, c := range components {
		if c.Mandatory {
			s.selected[c.ID] = true
		}
	}
	return s
}

func (s *FeeSelection) find(id string) (FeeComponent, bool) {
	for _, c := range s.components {
		if c.ID == id {
			return c, true
		}
	}
	return FeeComponent{}, false
}

// Toggle flips an optional component. Mandatory components are left selected.
func (s *FeeSelection) Toggle(id string) error {
	c, ok := s.find(id)
	if !ok {
		return customError.WrapFeeNotFound(id)
	}
	if c.Mandatory {
		return nil
	}
	s.selected[id] = !s.selected[id]
	return nil
}

// Select marks a component as selected.
func (s *FeeSelection) Select(id string) error {
	if _, ok := s.find(id); !ok {
		return customError.WrapFeeNotFound(id)
	}
	s.selected[id] = true
	return nil
}

// Deselect clears an optional component. For a mandatory component the
// selection is left unchanged and ErrMandatoryFee reports why; callers that
// only need the total may ignore it.
func (s *FeeSelection) Deselect(id string) error {
	c, ok := s.find(id)
	if !ok {
		return customError.WrapFeeNotFound(id)
	}
	if c.Mandatory {
		return customError.WrapMandatoryFee(id)
	}
	delete(s.selected, id)
	return nil
}

func (s *FeeSelection) IsSelected(id string) bool {
	return s.selected[id]
}

// Total sums the selected components.
func (s *FeeSelection) Total() decimal.Decimal {
	total := decimal.Zero
	for _, c := range s.Items() {
		total = total.Add(c.Amount)
	}
	return total
}

// Items lists the selected components in catalogue order.
func (s *FeeSelection) Items() []FeeComponent {
	items := make([]FeeComponent, 0, len(s.selected))
	for _, c := range s.components {
		if s.selected[c.ID] {
			items = append(items, c)
		}
	}
	return items
}
