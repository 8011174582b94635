package main

import (
	"encoding/json"
	"flag"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type userEntry struct {
	ID int64 `json:"id"`
}

func main() {
	var (
		port  = flag.String("port", "9099", "port to listen on")
		users = flag.String("users", "1,2,3", "comma-separated user ids that exist")
	)
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer func() { _ = logger.Sync() }()

	known := map[int64]struct{}{}
	for _, part := range strings.Split(*users, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			logger.Fatal("invalid user id", zap.String("value", part))
		}
		known[id] = struct{}{}
	}

	r := chi.NewRouter()
	r.Get("/internal/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if _, ok := known[id]; !ok {
			logger.Debug("unknown user", zap.Int64("id", id))
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(userEntry{ID: id}); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	addr := ":" + *port
	logger.Info("mock identity service listening", zap.String("addr", addr), zap.Int("users", len(known)))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
