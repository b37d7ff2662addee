// Package metrics defines and registers all custom Prometheus metrics for the
// blog service. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tagblog"

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "ok", "rejected" (validation/reserved name), "exhausted",
//     "conflict" (lost the tag race)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Labels:
//   - path: "admin", "tagged" or "bare"
//   - result: "ok", "invalid", "ambiguous"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by path and result.",
	},
	[]string{"path", "result"},
)

// CSRFFailuresTotal counts form submissions rejected by the CSRF check.
// Label:
//   - form: "register", "login"
var CSRFFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "csrf_failures_total",
		Help:      "Total number of form submissions failing CSRF validation.",
	},
	[]string{"form"},
)

// PostsCreatedTotal counts newly created posts.
var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// CommentsCreatedTotal counts newly created comments.
var CommentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_created_total",
		Help:      "Total number of comments created.",
	},
)
