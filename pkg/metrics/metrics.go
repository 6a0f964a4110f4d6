package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// WSConnections tracks live websocket connections on this instance.
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "togetherhub_ws_connections",
		Help: "Live websocket connections.",
	})

	// ActiveRooms tracks rooms with at least one connection.
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "togetherhub_active_rooms",
		Help: "Rooms with at least one live connection.",
	})

	// UpdatesRelayed counts edit/cursor events fanned out to room peers.
	UpdatesRelayed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "togetherhub_updates_relayed_total",
		Help: "Edit and cursor events relayed to room peers.",
	})

	// PresenceBroadcasts counts users-update snapshots emitted.
	PresenceBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "togetherhub_presence_broadcasts_total",
		Help: "Presence snapshots broadcast after membership changes.",
	})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
