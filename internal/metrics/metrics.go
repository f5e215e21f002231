// Package metrics defines the custom Prometheus metrics for the registry API.
// It is the single source of truth for metric names, labels, and help strings;
// promauto registers everything with the default registry at init time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registry"

// LoginAttemptsTotal counts login attempts by outcome ("success" / "failure").
// Failure is a single bucket on purpose: the label must not distinguish
// unknown users from wrong passwords.
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthorizationDeniedTotal counts requests rejected by the route policy.
// Labels:
//   - reason: "unauthenticated" (no principal) or "forbidden" (wrong role)
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Total number of requests rejected by the route policy.",
	},
	[]string{"reason"},
)

// AuditEntriesTotal counts audit entries successfully persisted, by action tag.
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit log entries written, by action.",
	},
	[]string{"action"},
)

// AuditWriteFailuresTotal counts discarded audit writes. The primary
// operation succeeds regardless; this counter is the only place the loss is
// visible.
var AuditWriteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_failures_total",
		Help:      "Total number of audit log writes that failed and were discarded, by action.",
	},
	[]string{"action"},
)
