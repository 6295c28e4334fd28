package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

const orderSuffixLen = 9

// GenerateOrderID produces an externally visible order identifier in the
// form RH-<epoch-millis>-<random base36 suffix>.
func GenerateOrderID() string {
	return fmt.Sprintf("RH-%d-%s", time.Now().UnixMilli(), randomBase36(orderSuffixLen))
}

func randomBase36(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(base36)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			buf[i] = base36[0]
			continue
		}
		buf[i] = base36[idx.Int64()]
	}
	return string(buf)
}
