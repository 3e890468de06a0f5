package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-paywebhooks/core"
)

const (
	HeaderWebhookID        = "webhook-id"
	HeaderWebhookTimestamp = "webhook-timestamp"
	HeaderWebhookSignature = "webhook-signature"

	signatureVersion = "v1"
	secretPrefix     = "whsec_"
	defaultTolerance = 5 * time.Minute
)

type Verifier interface {
	Verify(ctx context.Context, req core.InboundRequest) error
}

type DeliveryIDExtractor func(req core.InboundRequest) (string, error)

// StandardVerifier checks Standard Webhooks signatures: an HMAC-SHA256 over
// "<webhook-id>.<webhook-timestamp>.<body>" sent as a space separated list
// of "v1,<base64>" entries. A secret prefixed with "whsec_" is base64; any
// other secret is used as raw bytes.
type StandardVerifier struct {
	Secret    string
	Tolerance time.Duration
	Now       func() time.Time
}

func NewStandardVerifier(cfg core.WebhookConfig) StandardVerifier {
	return StandardVerifier{Secret: cfg.Secret, Tolerance: cfg.Tolerance}
}

func (v StandardVerifier) Verify(_ context.Context, req core.InboundRequest) error {
	id := headerValue(req.Headers, HeaderWebhookID)
	if id == "" {
		return unauthorized("webhooks: %s header is required", HeaderWebhookID)
	}
	rawTimestamp := headerValue(req.Headers, HeaderWebhookTimestamp)
	if rawTimestamp == "" {
		return unauthorized("webhooks: %s header is required", HeaderWebhookTimestamp)
	}
	signatures := headerValue(req.Headers, HeaderWebhookSignature)
	if signatures == "" {
		return unauthorized("webhooks: %s header is required", HeaderWebhookSignature)
	}
	key, err := signingKey(v.Secret)
	if err != nil {
		return err
	}

	seconds, err := strconv.ParseInt(rawTimestamp, 10, 64)
	if err != nil {
		return unauthorized("webhooks: invalid %s %q", HeaderWebhookTimestamp, rawTimestamp)
	}
	sentAt := time.Unix(seconds, 0).UTC()
	if skew := v.now().Sub(sentAt); skew > v.tolerance() || -skew > v.tolerance() {
		return unauthorized("webhooks: signature timestamp outside tolerance")
	}

	expected := computeSignature(key, id, rawTimestamp, req.Body)
	for _, entry := range strings.Fields(signatures) {
		version, encoded, ok := strings.Cut(entry, ",")
		if !ok || version != signatureVersion {
			continue
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			continue
		}
		if hmac.Equal(decoded, expected) {
			return nil
		}
	}
	return unauthorized("webhooks: signature verification failed")
}

func (v StandardVerifier) now() time.Time {
	if v.Now != nil {
		return v.Now().UTC()
	}
	return time.Now().UTC()
}

func (v StandardVerifier) tolerance() time.Duration {
	if v.Tolerance > 0 {
		return v.Tolerance
	}
	return defaultTolerance
}

// Sign returns the webhook-signature header value for body.
func Sign(secret string, id string, timestamp time.Time, body []byte) (string, error) {
	key, err := signingKey(secret)
	if err != nil {
		return "", err
	}
	mac := computeSignature(key, strings.TrimSpace(id), strconv.FormatInt(timestamp.Unix(), 10), body)
	return signatureVersion + "," + base64.StdEncoding.EncodeToString(mac), nil
}

// SignedHeaders returns the three Standard Webhooks headers for body.
func SignedHeaders(secret string, id string, timestamp time.Time, body []byte) (map[string]string, error) {
	signature, err := Sign(secret, id, timestamp, body)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		HeaderWebhookID:        strings.TrimSpace(id),
		HeaderWebhookTimestamp: strconv.FormatInt(timestamp.Unix(), 10),
		HeaderWebhookSignature: signature,
	}, nil
}

func signingKey(secret string) ([]byte, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, fmt.Errorf("webhooks: signature secret is required")
	}
	if encoded, ok := strings.CutPrefix(secret, secretPrefix); ok {
		key, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("webhooks: decode signing secret: %w", err)
		}
		return key, nil
	}
	return []byte(secret), nil
}

func computeSignature(key []byte, id string, timestamp string, body []byte) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(id))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write([]byte(timestamp))
	_, _ = mac.Write([]byte("."))
	_, _ = mac.Write(body)
	return mac.Sum(nil)
}

// StandardDeliveryIDExtractor reads the webhook-id header, falling back to a
// "delivery_id" metadata entry.
func StandardDeliveryIDExtractor(req core.InboundRequest) (string, error) {
	if value := headerValue(req.Headers, HeaderWebhookID); value != "" {
		return value, nil
	}
	if req.Metadata != nil {
		if value := strings.TrimSpace(fmt.Sprint(req.Metadata["delivery_id"])); value != "" && value != "<nil>" {
			return value, nil
		}
	}
	return "", fmt.Errorf("webhooks: delivery id is required for dedupe")
}

func HeaderDeliveryIDExtractor(headers ...string) DeliveryIDExtractor {
	keys := append([]string(nil), headers...)
	return func(req core.InboundRequest) (string, error) {
		for _, key := range keys {
			if value := strings.TrimSpace(headerValue(req.Headers, key)); value != "" {
				return value, nil
			}
		}
		return "", fmt.Errorf("webhooks: delivery id is required for dedupe")
	}
}

func ChainDeliveryIDExtractors(extractors ...DeliveryIDExtractor) DeliveryIDExtractor {
	list := append([]DeliveryIDExtractor(nil), extractors...)
	return func(req core.InboundRequest) (string, error) {
		var lastErr error
		for _, extractor := range list {
			if extractor == nil {
				continue
			}
			deliveryID, err := extractor(req)
			if err == nil && strings.TrimSpace(deliveryID) != "" {
				return strings.TrimSpace(deliveryID), nil
			}
			if err != nil {
				lastErr = err
			}
		}
		if lastErr != nil {
			return "", lastErr
		}
		return "", fmt.Errorf("webhooks: delivery id is required for dedupe")
	}
}

func headerValue(headers map[string]string, key string) string {
	if len(headers) == 0 {
		return ""
	}
	for existing, value := range headers {
		if strings.EqualFold(strings.TrimSpace(existing), strings.TrimSpace(key)) {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

var _ Verifier = StandardVerifier{}
