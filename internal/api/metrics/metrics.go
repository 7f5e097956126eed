// Package metrics defines and registers all custom Prometheus metrics for
// the taskboard API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskboard"

// ── Email delivery metrics ────────────────────────────────────────────────────

// EmailsEnqueuedTotal counts jobs accepted by the email delivery queue.
// Label:
//   - kind: "transactional" (single attempt) or "reminder" (retry budget)
var EmailsEnqueuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_enqueued_total",
		Help:      "Total number of email jobs accepted by the delivery queue.",
	},
	[]string{"kind"},
)

// EmailsDeliveredTotal counts successful SMTP transmissions.
var EmailsDeliveredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_delivered_total",
		Help:      "Total number of emails successfully handed to the SMTP server.",
	},
)

// EmailSendFailuresTotal counts individual failed delivery attempts. A job
// may contribute several failures before it is retried or exhausted.
var EmailSendFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "email_send_failures_total",
		Help:      "Total number of failed email delivery attempts.",
	},
)

// EmailsExhaustedTotal counts jobs that spent every configured attempt and
// reached the terminal exhausted state.
var EmailsExhaustedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "emails_exhausted_total",
		Help:      "Total number of email jobs that exhausted all delivery attempts.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsPublishedTotal counts in-app notification dispatches.
// Label:
//   - result: "delivered" (persisted and published), "dropped" (persisted,
//     realtime publish failed) or "failed" (persistence failed)
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of in-app notification dispatches, by result.",
	},
	[]string{"result"},
)

// ── Event bus metrics ─────────────────────────────────────────────────────────

// DomainEventsTotal counts events emitted on the in-process bus.
// Label:
//   - event: the event name (e.g. "assignedTask")
var DomainEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "domain_events_total",
		Help:      "Total number of domain events emitted on the bus.",
	},
	[]string{"event"},
)

// SubscriberErrorsTotal counts subscriber failures caught at the bus
// boundary.
// Label:
//   - event: the event name whose subscriber failed
var SubscriberErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subscriber_errors_total",
		Help:      "Total number of event subscriber errors caught by the bus.",
	},
	[]string{"event"},
)

// ── Monitor metrics ───────────────────────────────────────────────────────────

// MonitorTriggersTotal counts sweep conditions that fired.
// Label:
//   - condition: "due_soon", "low_memory" or "high_load"
var MonitorTriggersTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "monitor_triggers_total",
		Help:      "Total number of scheduled monitor conditions that fired.",
	},
	[]string{"condition"},
)

// CriticalErrorsTotal counts uncaught failures routed through the critical
// error reporter.
var CriticalErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "critical_errors_total",
		Help:      "Total number of uncaught errors handled by the critical error reporter.",
	},
)
