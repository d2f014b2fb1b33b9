// Package handler is the serverless entry point. It serves the API without the
// room reconciler, which needs a long-running process.
package handler

import (
	"net/http"
	"sync"

	"frontdesk/config"
	"frontdesk/di"
	_ "frontdesk/docs"
	"frontdesk/shared/logger"
	"frontdesk/transport/http/response"
)

var (
	initOnce sync.Once
	api      http.Handler
	initErr  error
)

func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		server, err := di.InitializeService()
		if err != nil {
			initErr = err

			return
		}

		api = server.Handler()
	})

	if initErr != nil {
		logger.ErrorWithStack(initErr)
		response.WithUnhealthy(w)

		return
	}

	r.RequestURI = r.URL.String()

	api.ServeHTTP(w, r)
}
