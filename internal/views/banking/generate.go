package banking

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// GenerateAccountNumber returns ACC, the last 8 digits of the current Unix millisecond
// time and 3 random digits. Uniqueness is left to the backend.
func GenerateAccountNumber() string {
	return accountNumber(time.Now(), rand.IntN(1000))
}

// GenerateCardNumber returns 4111, the last 8 digits of the current Unix millisecond time
// and 4 random digits.
func GenerateCardNumber() string {
	return cardNumber(time.Now(), rand.IntN(10000))
}

func accountNumber(now time.Time, random int) string {
	return fmt.Sprintf("ACC%s%03d", lastDigits(now, 8), random%1000)
}

func cardNumber(now time.Time, random int) string {
	return fmt.Sprintf("4111%s%04d", lastDigits(now, 8), random%10000)
}

func lastDigits(now time.Time, n int) string {
	ms := strconv.FormatInt(now.UnixMilli(), 10)
	if len(ms) < n {
		return strings.Repeat("0", n-len(ms)) + ms
	}
	return ms[len(ms)-n:]
}
