package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ConnectionsCreated counts created connection records by initiator role.
	ConnectionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyconnect_connections_created_total",
		Help: "Connection records created, labelled by initiator role.",
	}, []string{"initiator"})

	// ConnectionsResolved counts resolved invites by outcome.
	ConnectionsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studyconnect_connections_resolved_total",
		Help: "Connection invites resolved, labelled by outcome.",
	}, []string{"outcome"})

	// ProfileAppendFailures counts failed post-acceptance profile appends.
	ProfileAppendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "studyconnect_profile_append_failures_total",
		Help: "Best-effort profile list appends that failed after acceptance.",
	})
)
