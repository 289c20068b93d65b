package identitysync

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// Header names of the Svix delivery scheme Clerk signs its webhooks with.
const (
	HeaderWebhookID        = "svix-id"
	HeaderWebhookTimestamp = "svix-timestamp"
	HeaderWebhookSignature = "svix-signature"
)

// DefaultTimestampTolerance bounds how far a delivery timestamp may drift
// before the delivery is rejected as a possible replay.
const DefaultTimestampTolerance = 5 * time.Minute

var (
	ErrMissingSignatureHeaders = errors.New("missing webhook signature headers")
	ErrInvalidSignature        = errors.New("invalid webhook signature")
	ErrStaleTimestamp          = errors.New("webhook timestamp outside tolerance")
)

// VerifyAndParse checks the provider signature over the raw request body and
// returns the parsed lifecycle event. It must run before Sync; the service
// trusts its input completely. The signing secret is the provider-issued
// "whsec_..." value.
func VerifyAndParse(payload []byte, id, timestamp, signatureHeader, secret string) (*UserWebhookEvent, error) {
	id = strings.TrimSpace(id)
	timestamp = strings.TrimSpace(timestamp)
	signatureHeader = strings.TrimSpace(signatureHeader)
	if id == "" || timestamp == "" || signatureHeader == "" {
		return nil, ErrMissingSignatureHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return nil, ErrStaleTimestamp
	}
	if drift := time.Since(time.Unix(ts, 0)); drift > DefaultTimestampTolerance || drift < -DefaultTimestampTolerance {
		return nil, ErrStaleTimestamp
	}

	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(strings.TrimSpace(secret), "whsec_"))
	if err != nil || len(key) == 0 {
		return nil, ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(id))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	expected := mac.Sum(nil)

	// The header may carry several space-separated "v1,<base64>" entries
	// after a secret rotation; any matching entry validates the delivery.
	valid := false
	for _, part := range strings.Fields(signatureHeader) {
		version, sig, found := strings.Cut(part, ",")
		if !found || version != "v1" {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			valid = true
		}
	}
	if !valid {
		return nil, ErrInvalidSignature
	}

	var event UserWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, errors.New("verified payload is not valid JSON")
	}
	event.EventID = id
	event.Payload = append([]byte(nil), payload...)
	return &event, nil
}
