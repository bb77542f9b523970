package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

const (
	tokenLength     = 32
	maxResourceID   = 1_000_000
	emailNameLength = 10
)

// RandomToken looks like a Tracker API token: 32 lowercase hex characters.
func RandomToken() string {
	return randomHex(tokenLength)
}

func RandomID() int64 {
	n, err := rand.Int(rand.Reader, big.NewInt(maxResourceID))
	if err != nil {
		return 1
	}

	return n.Int64() + 1
}

func RandomEmail() string {
	return fmt.Sprintf("test_%s@example.com", randomHex(emailNameLength))
}

// Collection wraps items in a collection element with no type attribute, the
// shape Tracker uses inconsistently.
func Collection(name string, items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		"<" + name + ">" + strings.Join(items, "") + "</" + name + ">"
}

// Story renders a minimal story element.
func Story(id int64, name string) string {
	return fmt.Sprintf(`<story><id type="integer">%d</id><name>%s</name></story>`, id, name)
}

func randomHex(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return strings.Repeat("0", length)
	}

	return hex.EncodeToString(bytes)[:length]
}
