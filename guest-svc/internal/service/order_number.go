package service

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"strings"
	"time"
)

const (
	orderNumberPrefix   = "ORD-"
	orderSuffixLength   = 4
	base36Alphabet      = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	maxOrderNumberTries = 5
)

// NewOrderNumber returns ORD-<base36 unix millis>-<4 random base36>, 17
// characters until 2059.
func NewOrderNumber() (string, error) {
	return newOrderNumberAt(time.Now())
}

func newOrderNumberAt(now time.Time) (string, error) {
	var sb strings.Builder
	sb.WriteString(orderNumberPrefix)
	sb.WriteString(strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36)))
	sb.WriteByte('-')

	limit := big.NewInt(int64(len(base36Alphabet)))
	for i := 0; i < orderSuffixLength; i++ {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		sb.WriteByte(base36Alphabet[n.Int64()])
	}
	return sb.String(), nil
}
