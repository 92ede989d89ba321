// Package health reports the availability of the record store and the other
// watched dependencies over gRPC and through the apt readiness probe.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	ServiceName     = "frontdesk"
	DefaultInterval = 10 * time.Second
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name   string
	pinger Pinger
}

// Checker polls its dependencies and mirrors the result into a gRPC health
// server. It serves only while every dependency answers.
type Checker struct {
	deps     []dependency
	server   *grpchealth.Server
	interval time.Duration
	logger   apt.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	serving bool
}

// NewChecker watches the record store under the name "record_store".
func NewChecker(store Pinger, interval time.Duration, logger apt.Logger) *Checker {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Checker{
		deps:     []dependency{{name: "record_store", pinger: store}},
		server:   grpchealth.NewServer(),
		interval: interval,
		logger:   logger,
	}
	c.setStatus(false)
	return c
}

// Watch adds a dependency. Call it before Start.
func (c *Checker) Watch(name string, p Pinger) {
	c.deps = append(c.deps, dependency{name: name, pinger: p})
}

// Check pings every dependency once and updates the gRPC status. It has the
// apt.HealthCheck signature so it can back the readiness probe.
func (c *Checker) Check(ctx context.Context) error {
	var errs []error
	for _, d := range c.deps {
		if err := d.pinger.Ping(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d.name, err))
		}
	}
	err := errors.Join(errs...)
	c.setStatus(err == nil)
	return err
}

func (c *Checker) Start(ctx context.Context) error {
	if err := c.Check(ctx); err != nil {
		c.logger.Info("dependencies not ready", "error", err)
	}

	pollCtx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	c.mu.Lock()
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	go c.poll(pollCtx, done)
	return nil
}

func (c *Checker) Stop(ctx context.Context) error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		select {
		case <-done:
		case <-ctx.Done():
		}
	}
	c.server.Shutdown()
	return nil
}

// Serving reports the last observed status.
func (c *Checker) Serving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serving
}

// GRPC returns the registrar for the standard grpc.health.v1 service.
func (c *Checker) GRPC() apt.GRPCServiceRegistrar {
	return registrar{server: c.server}
}

func (c *Checker) poll(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			checkCtx, cancel := context.WithTimeout(ctx, c.interval)
			if err := c.Check(checkCtx); err != nil {
				c.logger.Error("health check failed", "error", err)
			}
			cancel()
		}
	}
}

func (c *Checker) setStatus(serving bool) {
	c.mu.Lock()
	changed := c.serving != serving
	c.serving = serving
	c.mu.Unlock()

	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	if changed {
		c.logger.Info("health status changed", "serving", serving)
	}
}

type registrar struct {
	server *grpchealth.Server
}

func (r registrar) RegisterGRPCService(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, r.server)
}
