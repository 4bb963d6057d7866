package controllers

import (
	"net/http"

	"github.com/sokolink/sokolink-app/api/responses"
	"github.com/sokolink/sokolink-app/pkg/config"
)

// HealthLive reports process liveness.
func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-SokoLink-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "ok"})
	}
}
