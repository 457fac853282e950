package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridline-analytics/sitecast/internal/model"
	"github.com/gridline-analytics/sitecast/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the persisted tables as a read-only dashboard API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st := processedStore()
		r := newRouter(st)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// newRouter builds the read-only API over the persisted tables.
func newRouter(st *store.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, map[string]string{"status": "ok"})
	})

	r.Get("/api/evm", func(w http.ResponseWriter, _ *http.Request) {
		rows, err := st.ReadEVMTimeseries()
		if err != nil {
			respondError(w, err)
			return
		}
		out := make([]apiEVMRow, len(rows))
		for i, row := range rows {
			out[i] = toAPIEVMRow(row)
		}
		respondJSON(w, out)
	})

	r.Get("/api/runs", func(w http.ResponseWriter, _ *http.Request) {
		runs, err := st.ReadRuns()
		if err != nil {
			respondError(w, err)
			return
		}
		out := make([]apiRun, len(runs))
		for i, run := range runs {
			out[i] = apiRun{
				ProjectID:              run.ProjectID,
				EAC:                    model.JSONFloat(run.EAC),
				FinishDaysOverBaseline: model.JSONFloat(run.FinishDaysOverBaseline),
			}
		}
		respondJSON(w, out)
	})

	r.Get("/api/summary", func(w http.ResponseWriter, _ *http.Request) {
		summaries, err := st.ReadSummary()
		if err != nil {
			respondError(w, err)
			return
		}
		out := make([]apiSummary, len(summaries))
		for i, s := range summaries {
			out[i] = apiSummary{
				ProjectID: s.ProjectID,
				EACP10:    model.JSONFloat(s.EACP10),
				EACP50:    model.JSONFloat(s.EACP50),
				EACP80:    model.JSONFloat(s.EACP80),
				FinishP10: model.JSONFloat(s.FinishP10),
				FinishP50: model.JSONFloat(s.FinishP50),
				FinishP80: model.JSONFloat(s.FinishP80),
			}
		}
		respondJSON(w, out)
	})

	r.Get("/api/curves", func(w http.ResponseWriter, _ *http.Request) {
		points, err := st.ReadCurve()
		if err != nil {
			respondError(w, err)
			return
		}
		out := make([]apiCurvePoint, len(points))
		for i, p := range points {
			out[i] = apiCurvePoint{
				ProjectID: p.ProjectID,
				Metric:    p.Metric,
				Value:     model.JSONFloat(p.Value),
				CDF:       model.JSONFloat(p.CDF),
			}
		}
		respondJSON(w, out)
	})

	return r
}

// API row types mirror the persisted tables but serialize NaN as null.

type apiEVMRow struct {
	ProjectID     string          `json:"project_id"`
	WorkElementID string          `json:"work_element_id"`
	Period        string          `json:"period"`
	EV            model.JSONFloat `json:"ev"`
	PV            model.JSONFloat `json:"pv"`
	AC            model.JSONFloat `json:"ac"`
	BAC           model.JSONFloat `json:"bac"`
	CPI           model.JSONFloat `json:"cpi"`
	SPI           model.JSONFloat `json:"spi"`
	EAC           model.JSONFloat `json:"eac"`
	VAC           model.JSONFloat `json:"vac"`
	CV            model.JSONFloat `json:"cv"`
	SV            model.JSONFloat `json:"sv"`
}

func toAPIEVMRow(r model.EVMRow) apiEVMRow {
	return apiEVMRow{
		ProjectID:     r.ProjectID,
		WorkElementID: r.WorkElementID,
		Period:        r.Period,
		EV:            model.JSONFloat(r.EV),
		PV:            model.JSONFloat(r.PV),
		AC:            model.JSONFloat(r.AC),
		BAC:           model.JSONFloat(r.BAC),
		CPI:           model.JSONFloat(r.CPI),
		SPI:           model.JSONFloat(r.SPI),
		EAC:           model.JSONFloat(r.EAC),
		VAC:           model.JSONFloat(r.VAC),
		CV:            model.JSONFloat(r.CV),
		SV:            model.JSONFloat(r.SV),
	}
}

type apiRun struct {
	ProjectID              string          `json:"project_id"`
	EAC                    model.JSONFloat `json:"eac"`
	FinishDaysOverBaseline model.JSONFloat `json:"finish_days_over_baseline"`
}

type apiSummary struct {
	ProjectID string          `json:"project_id"`
	EACP10    model.JSONFloat `json:"eac_p10"`
	EACP50    model.JSONFloat `json:"eac_p50"`
	EACP80    model.JSONFloat `json:"eac_p80"`
	FinishP10 model.JSONFloat `json:"finish_p10"`
	FinishP50 model.JSONFloat `json:"finish_p50"`
	FinishP80 model.JSONFloat `json:"finish_p80"`
}

type apiCurvePoint struct {
	ProjectID string          `json:"project_id"`
	Metric    string          `json:"metric"`
	Value     model.JSONFloat `json:"value"`
	CDF       model.JSONFloat `json:"cdf"`
}

func respondJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, err error) {
	zap.L().Error("serve: table read failed", zap.Error(err))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
