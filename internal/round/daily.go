package round

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// dailyRules is the rotation the rule-of-the-day is drawn from: every
// plain single consonant plus a set of common pairs.
var dailyRules = []string{
	"ㄱ", "ㄴ", "ㄷ", "ㄹ", "ㅁ", "ㅂ", "ㅅ", "ㅇ", "ㅈ", "ㅊ", "ㅋ", "ㅌ", "ㅍ", "ㅎ",
	"ㄱㅅ", "ㄴㅁ", "ㄷㅂ", "ㅅㅈ", "ㅇㅎ", "ㅁㅅ", "ㄱㄴ", "ㅂㅅ", "ㄹㅇ", "ㅈㅊ",
}

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RuleOfDay picks a deterministic rule for a date using
// HMAC(salt, YYYY-MM-DD) % len(dailyRules). Everyone with the same salt
// gets the same rule on the same day.
func RuleOfDay(t time.Time, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(t)))
	sum := h.Sum(nil)
	// first 8 bytes to uint64 for modulus distribution
	n := binary.BigEndian.Uint64(sum[:8])
	return dailyRules[n%uint64(len(dailyRules))]
}
