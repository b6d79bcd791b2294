package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/rockquest-admin/internal/middleware"
)

// Recovery creates panic recovery middleware for the dashboard. It renders a
// static HTML error page.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, webPanicHandler)
}

func webPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`<!DOCTYPE html>
<html lang="en-GB">
<head><title>Error | RockQuest Admin</title><link rel="stylesheet" href="/static/css/app.css"></head>
<body>
<main class="error-page">
<h1>Something went wrong</h1>
<p>The dashboard hit an unexpected error. Please try again.</p>
<p><a href="/">Back to dashboard</a></p>
</main>
</body>
</html>`))
}
