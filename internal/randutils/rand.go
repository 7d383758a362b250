package randutils

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func RandString(n int) string {
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	if err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = charset[b%byte(len(charset))]
	}
	return string(buf)
}

// RandDuration returns a duration drawn uniformly from [0, max).
// Returns 0 when max <= 0.
func RandDuration(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(err)
	}
	n := binary.LittleEndian.Uint64(buf[:])
	return time.Duration(n % uint64(max))
}
