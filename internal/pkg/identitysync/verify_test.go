package identitysync

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"testing"
	"time"
)

const testSigningKey = "test-signing-key-0123456789abcdef"

func testSecret() string {
	return "whsec_" + base64.StdEncoding.EncodeToString([]byte(testSigningKey))
}

func signPayload(id, timestamp string, payload []byte) string {
	mac := hmac.New(sha256.New, []byte(testSigningKey))
	fmt.Fprintf(mac, "%s.%s.", id, timestamp)
	mac.Write(payload)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestVerifyAndParseAcceptsValidSignature(t *testing.T) {
	payload := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)
	id := "msg_abc"
	ts := fmt.Sprintf("%d", time.Now().Unix())

	event, err := VerifyAndParse(payload, id, ts, signPayload(id, ts, payload), testSecret())
	if err != nil {
		t.Fatalf("expected valid delivery to verify, got %v", err)
	}
	if event.EventID != id {
		t.Errorf("event id = %q, want %q", event.EventID, id)
	}
	if event.EventType != EventUserCreated {
		t.Errorf("event type = %q, want %q", event.EventType, EventUserCreated)
	}
	if event.Data.ID != "user_123" {
		t.Errorf("user id = %q, want user_123", event.Data.ID)
	}
	if string(event.Payload) != string(payload) {
		t.Errorf("payload not preserved on the parsed event")
	}
}

func TestVerifyAndParseAcceptsRotatedSignatureList(t *testing.T) {
	payload := []byte(`{"type":"user.updated","data":{"id":"user_123"}}`)
	id := "msg_rotated"
	ts := fmt.Sprintf("%d", time.Now().Unix())

	header := "v1,c2lnbmF0dXJlLWZyb20tb2xkLXNlY3JldA== " + signPayload(id, ts, payload)
	if _, err := VerifyAndParse(payload, id, ts, header, testSecret()); err != nil {
		t.Fatalf("expected delivery with one matching entry to verify, got %v", err)
	}
}

func TestVerifyAndParseRejectsTamperedPayload(t *testing.T) {
	payload := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)
	id := "msg_tampered"
	ts := fmt.Sprintf("%d", time.Now().Unix())
	sig := signPayload(id, ts, payload)

	tampered := []byte(`{"type":"user.created","data":{"id":"user_666"}}`)
	if _, err := VerifyAndParse(tampered, id, ts, sig, testSecret()); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for tampered payload, got %v", err)
	}
}

func TestVerifyAndParseRejectsStaleTimestamp(t *testing.T) {
	payload := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)
	id := "msg_stale"
	ts := fmt.Sprintf("%d", time.Now().Add(-10*time.Minute).Unix())

	if _, err := VerifyAndParse(payload, id, ts, signPayload(id, ts, payload), testSecret()); !errors.Is(err, ErrStaleTimestamp) {
		t.Fatalf("expected ErrStaleTimestamp, got %v", err)
	}
}

func TestVerifyAndParseRejectsMissingHeaders(t *testing.T) {
	payload := []byte(`{}`)
	if _, err := VerifyAndParse(payload, "", "", "", testSecret()); !errors.Is(err, ErrMissingSignatureHeaders) {
		t.Fatalf("expected ErrMissingSignatureHeaders, got %v", err)
	}
}

func TestVerifyAndParseRejectsWrongSecret(t *testing.T) {
	payload := []byte(`{"type":"user.created","data":{"id":"user_123"}}`)
	id := "msg_wrong_secret"
	ts := fmt.Sprintf("%d", time.Now().Unix())
	sig := signPayload(id, ts, payload)

	otherSecret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("another-secret-entirely-here!!!!"))
	if _, err := VerifyAndParse(payload, id, ts, sig, otherSecret); !errors.Is(err, ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature for wrong secret, got %v", err)
	}
}
