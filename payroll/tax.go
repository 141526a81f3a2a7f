/*
tax.go - Weekly withholding estimate

PURPOSE:
  Approximates weekly PAYG withholding by annualizing the weekly gross,
  applying a fixed progressive bracket table with the standard marginal
  formula, and dividing back by 52.

  This is a withholding approximation, not an authoritative tax table.
  The bracket boundaries and cumulative base amounts are deliberate
  constants and must not be "corrected" against real schedules.
*/
package payroll

import "github.com/shopspring/decimal"

// TaxBracket is one marginal band. BaseTax is the cumulative tax owed at
// the bracket's lower edge (the previous bracket's upper bound).
type TaxBracket struct {
	UpTo    decimal.Decimal
	Rate    decimal.Decimal
	BaseTax decimal.Decimal
}

// TaxBrackets2025 is the annual bracket table used for the weekly estimate.
var TaxBrackets2025 = []TaxBracket{
	{UpTo: decimal.NewFromInt(18200), Rate: decimal.Zero, BaseTax: decimal.Zero},
	{UpTo: decimal.NewFromInt(45000), Rate: dec(0.16), BaseTax: decimal.Zero},
	{UpTo: decimal.NewFromInt(135000), Rate: dec(0.30), BaseTax: decimal.NewFromInt(4288)},
	{UpTo: decimal.NewFromInt(190000), Rate: dec(0.37), BaseTax: decimal.NewFromInt(31288)},
	{UpTo: decimal.NewFromInt(999999999), Rate: dec(0.45), BaseTax: decimal.NewFromInt(51638)},
}

// CalculateWeeklyTax estimates withholding for one week of gross pay.
// Annualizes as gross*52, applies the marginal formula, divides by 52 and
// rounds to 2dp.
func CalculateWeeklyTax(gross decimal.Decimal) decimal.Decimal {
	annual := gross.Mul(weeksPerYear)

	lower := decimal.Zero
	annualTax := decimal.Zero
	for i, b := range TaxBrackets2025 {
		// The top bracket is open-ended; its UpTo is a display sentinel
		if i == len(TaxBrackets2025)-1 || annual.LessThanOrEqual(b.UpTo) {
			annualTax = b.BaseTax.Add(annual.Sub(lower).Mul(b.Rate))
			break
		}
		lower = b.UpTo
	}

	return annualTax.Div(weeksPerYear).Round(2)
}
