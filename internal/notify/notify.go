// Package notify delivers expiry notifications through shoutrrr service URLs.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/containrrr/shoutrrr"

	"github.com/five82/flipclock/internal/logger"
	"github.com/five82/flipclock/internal/state"
)

// SendFunc delivers message to a single shoutrrr URL.
type SendFunc func(serviceURL, message string) error

// Notifier sends one message per configured service when a countdown expires.
type Notifier struct {
	urls []string
	send SendFunc

	// Observe, when set, is called with the outcome of every delivery.
	Observe func(error)
}

// New returns a Notifier for the given service URLs.
func New(urls []string) *Notifier {
	return &Notifier{urls: append([]string(nil), urls...), send: shoutrrr.Send}
}

// WithSender replaces the delivery function.
func (n *Notifier) WithSender(send SendFunc) *Notifier {
	n.send = send
	return n
}

// Enabled reports whether any service is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && len(n.urls) > 0
}

// Message renders the expiry message for snap.
func Message(snap state.Snapshot) string {
	target := snap.Target.Format(time.RFC1123)
	if snap.Caption != "" {
		return fmt.Sprintf("%s reached %s", snap.Caption, target)
	}
	return fmt.Sprintf("Countdown reached %s", target)
}

// Expired notifies every service about snap. Failures are logged and joined
// into the returned error; one failing service does not stop the others.
func (n *Notifier) Expired(ctx context.Context, snap state.Snapshot) error {
	if !n.Enabled() {
		return nil
	}
	message := Message(snap)

	var errs []error
	for _, u := range n.urls {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := n.send(u, message)
		if n.Observe != nil {
			n.Observe(err)
		}
		if err != nil {
			logger.Errorf("Failed to send expiry notification via %s: %v", service(u), err)
			errs = append(errs, fmt.Errorf("%s: %w", service(u), err))
			continue
		}
		logger.Infof("Sent expiry notification via %s", service(u))
	}
	return errors.Join(errs...)
}

// service names the shoutrrr service of u without leaking credentials.
func service(u string) string {
	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme == "" {
		return "unknown"
	}
	return parsed.Scheme
}
