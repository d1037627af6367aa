package main

import (
	"context"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"attendancehub/internal/auth"
	"attendancehub/internal/config"
	internalgrpc "attendancehub/internal/grpc"
	internalhttp "attendancehub/internal/http"
	"attendancehub/internal/logger"
	"attendancehub/internal/metrics"
	"attendancehub/internal/operations"
	"attendancehub/internal/store/selector"
)

func main() {
	configFile := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	logg := logger.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := selector.Open(ctx, cfg, logg)
	if err != nil {
		logg.Error("store init failed", "err", err)
		os.Exit(1)
	}
	defer st.Close()

	m := metrics.New()
	svc := operations.New(st, auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL), operations.WithRecorder(m))
	server := internalhttp.NewServer(svc, m, logg, cfg.CORSOrigins)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logg.Info("http listening", "addr", cfg.Addr(), "storage", st.Mode())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("http server error", "err", err)
			stop()
		}
	}()

	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			logg.Error("grpc listen failed", "addr", cfg.GRPCAddr, "err", err)
			os.Exit(1)
		}
		grpcServer := internalgrpc.NewServer(st, logg)
		go func() {
			logg.Info("grpc listening", "addr", cfg.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				logg.Error("grpc server error", "err", err)
			}
		}()
		defer grpcServer.GracefulStop()
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logg.Error("shutdown error", "err", err)
	}
}
