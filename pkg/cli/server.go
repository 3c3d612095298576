package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"github.com/mchmarny/rubric/pkg/rubric"
	"github.com/urfave/cli/v2"
)

const (
	serverShutdownWaitSeconds = 5
	serverTimeoutSeconds      = 300
	serverMaxHeaderBytes      = 20
	serverPortDefault         = 8080
)

var (
	portFlag = &cli.IntFlag{
		Name:     "port",
		Usage:    "Port on which the server will listen",
		Value:    serverPortDefault,
		Required: false,
	}

	serverCmd = &cli.Command{
		Name:    "server",
		Aliases: []string{"serve"},
		Usage:   "Start local HTTP scoring server",
		Action:  cmdStartServer,
		Flags: []cli.Flag{
			portFlag,
			weightsFlag,
			debugFlag,
		},
	}
)

func cmdStartServer(c *cli.Context) error {
	cfg := getConfig(c)
	weights, err := loadWeightsFlag(c)
	if err != nil {
		return err
	}
	scorer, err := rubric.New(cfg.Source, weights)
	if err != nil {
		return fmt.Errorf("creating scorer: %w", err)
	}

	port := c.Int(portFlag.Name)
	address := fmt.Sprintf("127.0.0.1:%d", port)

	mux := makeRouter(cfg.Source, scorer)
	s := &http.Server{
		Addr:           address,
		Handler:        mux,
		ReadTimeout:    serverTimeoutSeconds * time.Second,
		WriteTimeout:   serverTimeoutSeconds * time.Second,
		MaxHeaderBytes: 1 << serverMaxHeaderBytes,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("error starting server", "error", err)
		}
	}()

	slog.Info("server started", "address", fmt.Sprintf("http://%s", address))

	<-done

	ctx, cancel := context.WithTimeout(context.Background(), serverShutdownWaitSeconds*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("error shutting down server", "error", err)
	}
	return nil
}

func makeRouter(src rubric.Source, scorer *rubric.Scorer) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /score", scoreHandler(scorer))
	mux.HandleFunc("GET /signal", signalHandler(src))
	mux.HandleFunc("GET /metrics", metricsHandler)
	mux.HandleFunc("GET /regimes", regimesHandler(src))

	return mux
}

func scoreHandler(scorer *rubric.Scorer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company := r.URL.Query().Get("company")
		if company == "" {
			writeError(w, http.StatusBadRequest, errors.New("company parameter required"))
			return
		}
		h, err := parseHorizonParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		bd, err := scorer.Score(r.Context(), company, h, &rubric.ScoreOptions{
			AsOf: r.URL.Query().Get("as_of"),
		})
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, bd)
	}
}

func signalHandler(src rubric.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		company := r.URL.Query().Get("company")
		metric := r.URL.Query().Get("metric")
		if company == "" || metric == "" {
			writeError(w, http.StatusBadRequest, errors.New("company and metric parameters required"))
			return
		}
		h, err := parseHorizonParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var q *rubric.Query
		if asOf := r.URL.Query().Get("as_of"); asOf != "" {
			q = &rubric.Query{AsOf: asOf}
		}

		sig, err := src.GetValue(r.Context(), metric, company, h, q)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, sig)
	}
}

func metricsHandler(w http.ResponseWriter, _ *http.Request) {
	list := make([]*metricInfo, 0, len(rubric.Catalog))
	for id, desc := range rubric.Catalog {
		list = append(list, &metricInfo{ID: id, Description: desc})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	writeJSON(w, list)
}

func regimesHandler(src rubric.Source) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h, err := parseHorizonParam(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		var q *rubric.Query
		if asOf := r.URL.Query().Get("as_of"); asOf != "" {
			q = &rubric.Query{AsOf: asOf}
		}

		mix, err := src.GetRegimeMixture(r.Context(), h, q)
		if err != nil {
			writeError(w, statusFor(err), err)
			return
		}
		writeJSON(w, mix.Normalized())
	}
}

func parseHorizonParam(r *http.Request) (rubric.Horizon, error) {
	val := r.URL.Query().Get("horizon")
	if val == "" {
		return rubric.HorizonMid, nil
	}
	h, ok := rubric.ParseHorizon(val)
	if !ok {
		return "", fmt.Errorf("unknown horizon %q, expected one of [%s]", val, horizonUsage())
	}
	return h, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rubric.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, rubric.ErrInvalidConfig):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); err != nil {
		slog.Error("error encoding error response", "error", err)
	}
}
