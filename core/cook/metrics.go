package cook

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var responseCacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "recipecook_response_cache_lookups_total",
		Help: "Response cache lookups by result (hit or miss)",
	},
	[]string{"result"},
)
