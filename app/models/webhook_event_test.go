package models

import "testing"

func TestWebhookEventProcessed(t *testing.T) {
	event := &WebhookEvent{Status: WebhookStatusReceived}
	if event.Processed() {
		t.Error("received event must not report processed")
	}
	event.Status = WebhookStatusProcessed
	if !event.Processed() {
		t.Error("processed event must report processed")
	}
}

func TestChecksumPayload(t *testing.T) {
	a := ChecksumPayload([]byte(`{"id":1}`))
	b := ChecksumPayload([]byte(`{"id":1}`))
	c := ChecksumPayload([]byte(`{"id":2}`))

	if a != b {
		t.Error("identical payloads should produce identical checksums")
	}
	if a == c {
		t.Error("different payloads should produce different checksums")
	}
	if len(a) != 64 {
		t.Errorf("checksum length = %d, want 64 hex characters", len(a))
	}
}
