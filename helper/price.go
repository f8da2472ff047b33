package helper

import "errors"

var ErrPriceInput = errors.New("seat number, base price and hall capacity must be positive")

// PricingPolicy drives the center-seat premium. Seats are laid out in fixed
// rows of SeatsPerRow; the two rows nearest the hall middle are premium. In a
// premium row, columns within [CenterColMin, CenterColMax] pay CenterSeatRate
// times the base price, the remaining columns CenterRowRate times.
type PricingPolicy struct {
	SeatsPerRow    int
	CenterColMin   int
	CenterColMax   int
	CenterSeatRate float64
	CenterRowRate  float64
}

var DefaultPricingPolicy = PricingPolicy{
	SeatsPerRow:    10,
	CenterColMin:   2,
	CenterColMax:   8,
	CenterSeatRate: 1.5,
	CenterRowRate:  1.2,
}

// PriceForSeat computes the seat's price from the session's base price.
// Deterministic and side-effect free; the result is frozen onto the ticket
// at reservation time.
func (p PricingPolicy) PriceForSeat(seatNumber int, basePrice float64, hallCapacity int) (float64, error) {
	if seatNumber <= 0 || basePrice <= 0 || hallCapacity <= 0 {
		return 0, ErrPriceInput
	}

	totalRows := hallCapacity / p.SeatsPerRow
	if totalRows < 2 {
		// single-row halls have no middle to premium-price
		return basePrice, nil
	}

	row := (seatNumber-1)/p.SeatsPerRow + 1
	column := (seatNumber-1)%p.SeatsPerRow + 1

	if row != totalRows/2 && row != totalRows/2+1 {
		return basePrice, nil
	}
	if column >= p.CenterColMin && column <= p.CenterColMax {
		return basePrice * p.CenterSeatRate, nil
	}
	return basePrice * p.CenterRowRate, nil
}
