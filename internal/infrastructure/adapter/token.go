package adapter

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// TokenGenerator implements port.TokenGenerator. Agreement tokens sort by
// issue time: YYYYMMDD-HHMMSS-XXXX in UTC with an upper-case hex suffix.
type TokenGenerator struct{}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

func (g *TokenGenerator) AgreementToken(now time.Time) (string, error) {
	suffix, err := randomHex()
	if err != nil {
		return "", fmt.Errorf("agreement token: %w", err)
	}
	return now.UTC().Format("20060102-150405") + "-" + strings.ToUpper(suffix), nil
}

// ConversationID returns conv_<RFC3339 millis>_<4 lower-case hex>.
func (g *TokenGenerator) ConversationID(now time.Time) (string, error) {
	suffix, err := randomHex()
	if err != nil {
		return "", fmt.Errorf("conversation id: %w", err)
	}
	return "conv_" + now.UTC().Format("2006-01-02T15:04:05.000Z07:00") + "_" + suffix, nil
}

func randomHex() (string, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}

// SystemClock implements port.Clock with the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
