package cli

import (
	"context"
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"go.redcode.dev/mars/mars"
	"go.redcode.dev/mars/redcode"
)

// serveTournament starts a promhttp listener and runs a multi-round
// tournament concurrently, so the listener can be scraped while
// rounds are still in flight.
func serveTournament(cfg mars.Config, names []string, progs []redcode.Program, rounds int, addr string) error {
	reg := prometheus.NewRegistry()
	metrics := mars.NewMetrics(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", mars.Handler(reg))
	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Printf("mars: serving metrics on %s/metrics", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("mars: metrics server: %v", err)
		}
	}()
	defer server.Close()

	tourney := mars.NewTournament(cfg, names, progs, rounds, 1, metrics)
	result, err := tourney.Run(context.Background(), true)
	if err != nil {
		return err
	}
	log.Printf("mars: %d rounds complete, %d draws, wins=%v", result.Total, result.Draws, result.Wins)
	return nil
}
