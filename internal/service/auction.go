package service

import "github.com/shopspring/decimal"

// CurrentPrice is the highest bid, or the starting bid when nobody has bid.
func CurrentPrice(startingBid decimal.Decimal, maxBid decimal.NullDecimal) decimal.Decimal {
	if maxBid.Valid {
		return maxBid.Decimal
	}
	return startingBid
}

// MaxBidOrZero is the highest bid, or zero when nobody has bid. A first bid
// equal to the starting bid therefore still beats it.
func MaxBidOrZero(maxBid decimal.NullDecimal) decimal.Decimal {
	if maxBid.Valid {
		return maxBid.Decimal
	}
	return decimal.Zero
}

// AcceptsBid reports whether amount strictly beats the current maximum and
// reaches the starting bid. Ties with the current maximum lose.
func AcceptsBid(amount, startingBid decimal.Decimal, maxBid decimal.NullDecimal) bool {
	return amount.GreaterThan(MaxBidOrZero(maxBid)) && amount.GreaterThanOrEqual(startingBid)
}
