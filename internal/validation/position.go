package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/api/request"
	"github.com/alphaboard/Portfolio-Analytics-Backend/internal/model"
)

// DateFormat is the wire format for calendar days.
const DateFormat = "2006-01-02"

// ParsePositions validates a slice of wire positions and converts them into
// domain positions. Lifecycle invariants are enforced here: a positive entry
// price, an exit price whenever an exit date is set, and an exit date that
// never precedes the entry date.
func ParsePositions(inputs []request.PositionInput) ([]model.Position, error) {
	errors := make(map[string]string)
	positions := make([]model.Position, 0, len(inputs))

	for i, input := range inputs {
		field := func(name string) string { return fmt.Sprintf("positions[%d].%s", i, name) }

		if strings.TrimSpace(input.Ticker) == "" {
			errors[field("ticker")] = "ticker is required"
			continue
		}

		direction := model.Direction(input.Direction)
		if !direction.Valid() {
			errors[field("direction")] = "direction must be LONG or SHORT"
			continue
		}

		entryDate, err := time.Parse(DateFormat, input.EntryDate)
		if err != nil {
			errors[field("entryDate")] = "must be a YYYY-MM-DD date"
			continue
		}

		if input.EntryPrice <= 0 {
			errors[field("entryPrice")] = "entry price must be positive"
			continue
		}

		pos := model.Position{
			ID:           input.ID,
			Ticker:       input.Ticker,
			EntryDate:    entryDate,
			EntryPrice:   input.EntryPrice,
			CurrentPrice: input.CurrentPrice,
			Direction:    direction,
		}

		if input.ExitDate != nil {
			exitDate, err := time.Parse(DateFormat, *input.ExitDate)
			if err != nil {
				errors[field("exitDate")] = "must be a YYYY-MM-DD date"
				continue
			}
			if exitDate.Before(entryDate) {
				errors[field("exitDate")] = "exit date cannot precede entry date"
				continue
			}
			if input.ExitPrice == nil {
				errors[field("exitPrice")] = "exit price is required for closed positions"
				continue
			}
			pos.ExitDate = &exitDate
			pos.ExitPrice = input.ExitPrice
		}

		positions = append(positions, pos)
	}

	if len(errors) > 0 {
		return nil, &Error{Fields: errors}
	}
	return positions, nil
}

// ValidateRangeType checks a returns range type selector.
func ValidateRangeType(rangeType string) error {
	switch rangeType {
	case "DAY", "WEEK", "MONTH":
		return nil
	}
	return &Error{Fields: map[string]string{
		"rangeType": "must be one of DAY, WEEK, MONTH",
	}}
}
