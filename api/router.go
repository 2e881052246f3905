package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/safing/tabletext/database"
	"github.com/safing/tabletext/log"
	"github.com/safing/tabletext/metrics"
	"github.com/safing/tabletext/table"
)

// NewRouter returns a router serving the tables of the database. newTable
// must return an empty table whose serializer handles the text formats.
func NewRouter(db *database.Database, newTable func() *table.Table) *mux.Router {
	th := &tableHandler{
		db:       db,
		newTable: newTable,
	}

	router := mux.NewRouter()
	router.HandleFunc("/tables", th.list).Methods(http.MethodGet)
	router.HandleFunc("/tables/{key:.+}", th.get).Methods(http.MethodGet)
	router.HandleFunc("/tables/{key:.+}", th.put).Methods(http.MethodPut)
	router.HandleFunc("/tables/{key:.+}", th.delete).Methods(http.MethodDelete)
	router.HandleFunc("/metrics", serveMetrics).Methods(http.MethodGet)
	router.Use(RequestLogger)

	return router
}

// Serve serves the handler on address until the context is canceled.
func Serve(ctx context.Context, address string, handler http.Handler) error {
	server := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warningf("api: failed to shut down server: %s", err)
		}
	}()

	log.Infof("api: starting to listen on %s", address)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	log.Errorf("api: failed to listen on %s: %s", address, err)
	return err
}

func serveMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	metrics.WritePrometheus(w, false)
}
