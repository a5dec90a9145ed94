package value

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

const (
	tradeCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	tradeCodeLength   = 5
)

// TradeCode — короткий публичный идентификатор сделки.
type TradeCode string

func (c TradeCode) String() string {
	return string(c)
}

// GenerateTradeCode возвращает случайный код из алфавита [A-Z0-9].
// Уникальность обеспечивается вызывающей стороной через ограничение БД.
func GenerateTradeCode() TradeCode {
	var b strings.Builder
	b.Grow(tradeCodeLength)

	for range tradeCodeLength {
		b.WriteByte(tradeCodeAlphabet[rand.IntN(len(tradeCodeAlphabet))])
	}

	return TradeCode(b.String())
}

// ParseTradeCode нормализует пользовательский ввод: срезает ровно один
// ведущий "#" и проверяет формат кода.
func ParseTradeCode(s string) (TradeCode, error) {
	s = strings.TrimPrefix(s, "#")

	if len(s) != tradeCodeLength {
		return "", fmt.Errorf("trade code must be %d characters long", tradeCodeLength)
	}

	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(tradeCodeAlphabet, rune(s[i])) {
			return "", fmt.Errorf("trade code contains invalid character %q", s[i])
		}
	}

	return TradeCode(s), nil
}
