package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
	if enabled[0].HTTP.Method != httpDefaultMethod || enabled[0].HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected http defaults, got %#v", enabled[0].HTTP)
	}
}

func TestLoadRegistryInlinesAWSCredentials(t *testing.T) {
	t.Setenv("LOCK_EVENTS_SECRET", "shh")
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: events
    type: sns
    sns:
      topic_arn: arn:aws:sns:eu-central-1:000000000000:lock-events
      region: eu-central-1
      access_key_id: AKIDEXAMPLE
      secret_access_key: ${LOCK_EVENTS_SECRET}
      endpoint: http://localhost:4566
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	cfg, ok := reg.ByID("events")
	if !ok {
		t.Fatalf("expected events publisher")
	}
	if cfg.SNS.AccessKeyID != "AKIDEXAMPLE" || cfg.SNS.SecretAccessKey != "shh" || cfg.SNS.Endpoint != "http://localhost:4566" {
		t.Fatalf("unexpected credentials %#v", cfg.SNS.AWSCredentials)
	}
}

func TestValidatePublisherConfigRejectsMissingBlocks(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "h1", Type: TypeHTTP},
		{ID: "q1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "https://q"}},
		{ID: "s1", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "eu-central-1"}},
		{ID: "g1", Type: TypeGCPPubSub, GCPPubSub: &GCPPubSubPublisherConfig{ProjectID: "p"}},
		{ID: "", Type: TypeHTTP},
		{ID: "x"},
	}
	for _, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("expected validation error for %#v", cfg)
		}
	}
}
