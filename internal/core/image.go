package core

// image.go is the payment-image codec. Uploads arrive as a data URL
// ("data:<mime>;base64,<payload>") and are stored verbatim; the retrieval
// path decodes the stored string back into raw bytes and a MIME type.

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"
)

var dataURLMeta = regexp.MustCompile(`^data:(.*);base64$`)

// DecodeDataURL splits a stored payment-image string into its MIME type and
// raw bytes.
//
// The payload is everything after the first comma, rejoined in case it
// contained commas itself. Base64 decoding tolerates missing padding, which
// some clients strip.
func DecodeDataURL(s string) (mime string, data []byte, err error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 {
		return "", nil, fmt.Errorf("%w: no payload separator", ErrInvalidImageData)
	}

	m := dataURLMeta.FindStringSubmatch(parts[0])
	if m == nil || m[1] == "" {
		return "", nil, fmt.Errorf("%w: metadata %q", ErrInvalidImageMime, parts[0])
	}
	mime = m[1]

	payload := strings.Join(parts[1:], ",")
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return "", nil, fmt.Errorf("%w: bad base64 payload", ErrInvalidImageData)
		}
	}

	return mime, data, nil
}

// EncodeDataURL builds the stored form of an image: a data URL embedding the
// MIME type and the base64-encoded bytes.
func EncodeDataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}
