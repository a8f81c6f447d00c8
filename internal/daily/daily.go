package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DateKey names the UTC calendar day of t, e.g. "2025-03-01".
// Every player shares the same key between midnight and midnight UTC.
func DateKey(t time.Time) string {
	const layout = "2006-01-02"
	return t.In(time.UTC).Format(layout)
}

// Seed turns a day into the shuffle seed for that day's board.
// The salt keeps the seed secret from anyone who knows only the date;
// the leading 64 bits of the MAC feed board.NewRand.
func Seed(day time.Time, salt string) uint64 {
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(DateKey(day)))
	return binary.BigEndian.Uint64(mac.Sum(nil))
}
