// Package health exposes the liveness endpoint.
package health

import (
	"encoding/json"
	"net/http"

	"gorm.io/gorm"
)

type status struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// Handler reports process liveness and, when a database is attached,
// whether it answers a ping.
func Handler(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := status{Status: "ok"}
		code := http.StatusOK

		if db != nil {
			s.Database = "ok"
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(r.Context()) != nil {
				s.Status = "degraded"
				s.Database = "unavailable"
				code = http.StatusServiceUnavailable
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(s)
	}
}
