// Package httpapi assembles the HTTP surface of the service: a chi router
// with request ID propagation, structured request logging, panic recovery
// and CORS, exposing the health endpoints and the local uploads mount.
//
// The surface is intentionally small. Liveness (GET /health) always answers
// 200, readiness (GET /health/ready) gates on required dependencies, and the
// deep check (GET /health/deep) reports every dependency with latencies for
// deployment diagnostics.
//
// Example:
//
//	handler := httpapi.New(httpapi.Config{
//		AllowedOrigins: cfg.AllowedOrigins(),
//		UploadsDir:     cfg.Storage.UploadRoot,
//	},
//		httpapi.WithLogger(log),
//		httpapi.WithReadiness(database.Healthcheck(pool)),
//		httpapi.WithProbes(runner),
//	)
//	srv := server.New(cfg.Addr(), server.WithLogger(log))
//	err := srv.Start(ctx, handler)
package httpapi
