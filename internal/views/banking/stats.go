package banking

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/service-console/internal/apiclient/bank"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// AccountStats summarises a customer's checking accounts.
type AccountStats struct {
	TotalBalance decimal.Decimal
	ActiveCount  int
	Count        int
}

func ComputeAccountStats(accounts []bank.CheckingAccount) AccountStats {
	return AccountStats{
		TotalBalance: lo.Reduce(accounts, func(sum decimal.Decimal, a bank.CheckingAccount, _ int) decimal.Decimal {
			return sum.Add(a.Balance)
		}, decimal.Zero),
		ActiveCount: lo.CountBy(accounts, func(a bank.CheckingAccount) bool { return a.IsActive }),
		Count:       len(accounts),
	}
}

// CardStats summarises a customer's credit cards.
type CardStats struct {
	TotalLimit     decimal.Decimal
	TotalBalance   decimal.Decimal
	TotalAvailable decimal.Decimal
	Count          int
}

func ComputeCardStats(cards []bank.CreditCard) CardStats {
	limit := lo.Reduce(cards, func(sum decimal.Decimal, c bank.CreditCard, _ int) decimal.Decimal {
		return sum.Add(c.CreditLimit)
	}, decimal.Zero)
	balance := lo.Reduce(cards, func(sum decimal.Decimal, c bank.CreditCard, _ int) decimal.Decimal {
		return sum.Add(c.CurrentBalance)
	}, decimal.Zero)
	return CardStats{
		TotalLimit:     limit,
		TotalBalance:   balance,
		TotalAvailable: limit.Sub(balance),
		Count:          len(cards),
	}
}

// Utilization is round(100 * balance / limit), rounding halves up, and 0 for a zero limit.
// It is not clamped.
func Utilization(card bank.CreditCard) int {
	if card.CreditLimit.IsZero() {
		return 0
	}
	pct := card.CurrentBalance.Div(card.CreditLimit).Mul(hundred)
	return int(pct.Add(half).Floor().IntPart())
}

// UtilizationBar is Utilization clamped to [0, 100] for progress display.
func UtilizationBar(card bank.CreditCard) int {
	return lo.Clamp(Utilization(card), 0, 100)
}

func AvailableCredit(card bank.CreditCard) decimal.Decimal {
	return card.CreditLimit.Sub(card.CurrentBalance)
}

// TransactionStats partitions an account's transactions by type.
type TransactionStats struct {
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal
	Count            int
}

func ComputeTransactionStats(txs []bank.Transaction) TransactionStats {
	sum := func(kind bank.TransactionType) decimal.Decimal {
		return lo.Reduce(txs, func(acc decimal.Decimal, tx bank.Transaction, _ int) decimal.Decimal {
			if tx.TransactionType != kind {
				return acc
			}
			return acc.Add(tx.Amount)
		}, decimal.Zero)
	}
	return TransactionStats{
		TotalDeposits:    sum(bank.TransactionDeposit),
		TotalWithdrawals: sum(bank.TransactionWithdrawal),
		Count:            len(txs),
	}
}
