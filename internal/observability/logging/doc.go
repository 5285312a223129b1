// Package logging builds the process loggers on top of log/slog and carries
// them through request contexts.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (h SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    log := logging.WithRequestID(r.Context(), logging.FromContext(r.Context()))
//	    log.Info("search", slog.String("q", q))
//	}
package logging
