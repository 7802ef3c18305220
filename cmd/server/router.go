package main

import "net/http"

func buildHandler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/register", handleRegister)
	mux.HandleFunc("POST /v1/login", handleLogin)
	mux.HandleFunc("POST /v1/logout", handleLogout)
	mux.HandleFunc("GET /v1/status", handleStatus)

	mux.HandleFunc("POST /v1/sim", handleRunSim)
	mux.HandleFunc("GET /v1/sim/{id}", handleGetSim)

	mux.HandleFunc("GET /v1/records", handleGetRecords)
	mux.HandleFunc("GET /v1/myrecords", handleGetOwnRecords)

	mux.HandleFunc("/v1/watch", handleWatchWs)

	handler := useMiddleware(mux,
		corsMiddleware,
		authMiddleware,
		loggingMiddleware,
	)

	return handler
}
