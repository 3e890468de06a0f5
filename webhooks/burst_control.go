package webhooks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-paywebhooks/core"
	"github.com/goliatone/go-paywebhooks/events"
)

type BurstMode string

const (
	BurstModeNone     BurstMode = core.BurstModeNone
	BurstModeCoalesce BurstMode = core.BurstModeCoalesce
	BurstModeDebounce BurstMode = core.BurstModeDebounce
)

// BurstSubject is the decoded delivery a burst decision is made for.
type BurstSubject struct {
	ProviderID string
	Event      events.Event
	Metadata   map[string]any
}

type BurstDecision struct {
	Allow    bool
	Key      string
	Metadata map[string]any
}

type BurstController interface {
	Allow(ctx context.Context, subject BurstSubject) (BurstDecision, error)
}

type BurstKeyFunc func(subject BurstSubject) (string, bool)

type BurstOptions struct {
	Mode       BurstMode
	Window     time.Duration
	MaxEntries int
	Key        BurstKeyFunc
	Now        func() time.Time
}

// DefaultBurstController suppresses repeated events for the same resource.
// Coalesce suppresses for one window after the first event of a burst.
// Debounce restarts the window on every event, so a steady stream stays
// suppressed until it goes quiet.
type DefaultBurstController struct {
	mode       BurstMode
	window     time.Duration
	maxEntries int
	key        BurstKeyFunc
	now        func() time.Time

	mu     sync.Mutex
	bursts map[string]burst
}

type burst struct {
	anchor     time.Time
	suppressed int
}

func NewBurstController(opts BurstOptions) *DefaultBurstController {
	c := &DefaultBurstController{
		mode:       normalizeBurstMode(opts.Mode),
		window:     opts.Window,
		maxEntries: opts.MaxEntries,
		key:        opts.Key,
		now:        opts.Now,
		bursts:     map[string]burst{},
	}
	if c.window <= 0 {
		c.window = 2 * time.Second
	}
	if c.maxEntries <= 0 {
		c.maxEntries = 4096
	}
	if c.key == nil {
		c.key = ResourceBurstKey
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// NewBurstControllerFromConfig returns nil when burst control is disabled.
func NewBurstControllerFromConfig(cfg core.BurstConfig) BurstController {
	if normalizeBurstMode(BurstMode(cfg.Mode)) == BurstModeNone {
		return nil
	}
	return NewBurstController(BurstOptions{Mode: BurstMode(cfg.Mode), Window: cfg.Window})
}

func (c *DefaultBurstController) Allow(_ context.Context, subject BurstSubject) (BurstDecision, error) {
	if c == nil || c.mode == BurstModeNone {
		return BurstDecision{Allow: true}, nil
	}
	key, ok := c.key(subject)
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return BurstDecision{Allow: true}, nil
	}

	now := c.now().UTC()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpired(now)

	current, seen := c.bursts[key]
	if !seen {
		c.evictOldest()
		c.bursts[key] = burst{anchor: now}
		return BurstDecision{Allow: true, Key: key}, nil
	}

	current.suppressed++
	if c.mode == BurstModeDebounce {
		current.anchor = now
	}
	c.bursts[key] = current

	metadata := map[string]any{
		"burst_mode":       string(c.mode),
		"burst_key":        key,
		"burst_window_ms":  c.window.Milliseconds(),
		"burst_suppressed": current.suppressed,
	}
	if c.mode == BurstModeCoalesce {
		metadata["coalesced"] = true
	} else {
		metadata["debounced"] = true
	}
	return BurstDecision{Allow: false, Key: key, Metadata: metadata}, nil
}

func (c *DefaultBurstController) evictExpired(now time.Time) {
	for key, entry := range c.bursts {
		if now.Sub(entry.anchor) >= c.window {
			delete(c.bursts, key)
		}
	}
}

// evictOldest makes room for one more burst.
func (c *DefaultBurstController) evictOldest() {
	for len(c.bursts) >= c.maxEntries {
		oldestKey := ""
		var oldest time.Time
		for key, entry := range c.bursts {
			if oldestKey == "" || entry.anchor.Before(oldest) {
				oldestKey, oldest = key, entry.anchor
			}
		}
		delete(c.bursts, oldestKey)
	}
}

// ResourceBurstKey keys bursts on provider, event type and the payload
// resource id. A "burst_key" metadata entry replaces the event part.
func ResourceBurstKey(subject BurstSubject) (string, bool) {
	providerID := strings.ToLower(strings.TrimSpace(subject.ProviderID))
	if providerID == "" {
		return "", false
	}
	if raw, ok := subject.Metadata["burst_key"]; ok && raw != nil {
		if value := strings.TrimSpace(fmt.Sprint(raw)); value != "" {
			return providerID + ":" + strings.ToLower(value), true
		}
	}
	if subject.Event == nil {
		return "", false
	}
	resourceID := subject.Event.ResourceID()
	if resourceID == "" {
		return "", false
	}
	return providerID + ":" + string(subject.Event.EventType()) + ":" + resourceID, true
}

func normalizeBurstMode(mode BurstMode) BurstMode {
	switch BurstMode(strings.ToLower(strings.TrimSpace(string(mode)))) {
	case BurstModeCoalesce:
		return BurstModeCoalesce
	case BurstModeDebounce:
		return BurstModeDebounce
	default:
		return BurstModeNone
	}
}

var _ BurstController = (*DefaultBurstController)(nil)
