package tracker

import (
	"fmt"
	"strings"

	"github.com/andyle182810/gtracker/resource"
	"github.com/andyle182810/gtracker/xmlcodec"
)

// Decode normalizes the given collections in body, parses it and returns the
// value under key. A blank body or a missing key yields Null.
func Decode(body []byte, key string, collections []string) (resource.Value, error) {
	return decodeWith(xmlcodec.NewNormalizer(collections...), body, key)
}

func decodeWith(normalizer *xmlcodec.Normalizer, body []byte, key string) (resource.Value, error) {
	text := string(body)
	if strings.TrimSpace(text) == "" {
		return resource.Null(), nil
	}

	doc, err := xmlcodec.Parse(normalizer.Normalize(text))
	if err != nil {
		return resource.Null(), fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}

	return doc.Get(key), nil
}
