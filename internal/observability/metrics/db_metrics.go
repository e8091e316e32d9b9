package metrics

import (
	"database/sql"
	"log"

	"github.com/prometheus/client_golang/prometheus"
)

func registerDBMetrics(db *sql.DB, logger *log.Logger) {
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "assets_total",
			Help: "Registered assets",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM assets")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "assets_active",
			Help: "Active assets",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM assets WHERE active")
		},
	))

	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: metricPrefix + "work_orders_open",
			Help: "Work orders not yet completed or cancelled",
		},
		func() float64 {
			return queryCount(db, logger, "SELECT COUNT(*) FROM work_orders WHERE status NOT IN ('completed', 'cancelled')")
		},
	))
}

func queryCount(db *sql.DB, logger *log.Logger, query string) float64 {
	if db == nil {
		return 0
	}
	var count int64
	if err := db.QueryRow(query).Scan(&count); err != nil {
		if logger != nil {
			logger.Printf("metrics query failed: %v", err)
		}
		return 0
	}
	if count < 0 {
		return 0
	}
	return float64(count)
}
