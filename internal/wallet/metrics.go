package wallet

import (
	"github.com/prometheus/client_golang/prometheus"          // Metrics
	"github.com/prometheus/client_golang/prometheus/promauto" // Metric registration
)

// opsTotal counts operation outcomes: "success" or an error kind
var opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "ewallet_operations_total",
	Help: "Orchestrator operations processed, labeled by outcome",
}, []string{"operation", "outcome"})

// Operation labels
const (
	opSignup   = "signup"
	opLogin    = "login"
	opLogout   = "logout"
	opRefresh  = "refresh"
	opPreview  = "preview"
	opRecharge = "recharge"
	opTransfer = "transfer"
	opReload   = "reload"
)

// countSuccess records a successful operation
func countSuccess(op string) {
	opsTotal.WithLabelValues(op, "success").Inc()
}
