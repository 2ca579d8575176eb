package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intel-orchestrator/internal/model"
	"github.com/sells-group/intel-orchestrator/internal/planner"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for collection requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if !cmd.Flags().Changed("port") {
			servePort = cfg.Server.Port
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodPost},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, env.Orchestrator.CheckHealth(req.Context()))
		})

		r.Route("/v1", func(r chi.Router) {
			r.Post("/plan", func(w http.ResponseWriter, req *http.Request) {
				var body collectionRequest
				if !decodeBody(w, req, &body) {
					return
				}
				plan, err := env.Orchestrator.CreateCollectionPlan(body.CompanyName, body.Consumer, body.MaxCost, body.Sources)
				if err != nil {
					writeCollectionError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, plan)
			})

			r.Post("/collect", func(w http.ResponseWriter, req *http.Request) {
				var body collectionRequest
				if !decodeBody(w, req, &body) {
					return
				}
				data, err := env.Orchestrator.GetMultiSourceData(req.Context(), body.CompanyName, body.Consumer, body.MaxCost, body.Sources)
				if err != nil {
					writeCollectionError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, data)
			})

			r.Post("/intelligence", func(w http.ResponseWriter, req *http.Request) {
				var body struct {
					CustomerName string `json:"customer_name"`
					VendorName   string `json:"vendor_name"`
				}
				if !decodeBody(w, req, &body) {
					return
				}
				intel, err := env.Orchestrator.GetCustomerIntelligence(req.Context(), body.CustomerName, body.VendorName)
				if err != nil {
					writeCollectionError(w, err)
					return
				}
				writeJSON(w, http.StatusOK, intel)
			})

			r.Get("/status/{company}", func(w http.ResponseWriter, req *http.Request) {
				writeJSON(w, http.StatusOK, env.Orchestrator.GetRawDataStatus(req.Context(), chi.URLParam(req, "company")))
			})
		})

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", servePort),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			zap.L().Info("http server listening", zap.Int("port", servePort))
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return eris.Wrap(err, "shutdown server")
			}
			zap.L().Info("http server stopped")
			return nil
		case err := <-errCh:
			if err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "serve")
			}
			return nil
		}
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "listen port")
	rootCmd.AddCommand(serveCmd)
}

type collectionRequest struct {
	CompanyName string             `json:"company_name"`
	Consumer    model.ConsumerType `json:"consumer"`
	MaxCost     float64            `json:"max_cost"`
	Sources     []model.SourceType `json:"sources,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

func decodeBody(w http.ResponseWriter, req *http.Request, v any) bool {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}

// writeCollectionError maps a budget refusal to 422; anything else that
// escapes the orchestrator is a server-side failure.
func writeCollectionError(w http.ResponseWriter, err error) {
	var budgetErr *planner.BudgetExceededError
	if eris.As(err, &budgetErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: budgetErr.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("write response", zap.Error(err))
	}
}
