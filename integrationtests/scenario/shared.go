package scenario

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const restoreTimeout = 10 * time.Second

// fixture owns the stubs and registry changes of one scenario and undoes them in close.
type fixture struct {
	cfg      *Config
	gw       *GatewayClient
	stubs    []*StubBackend
	added    []registration
	detached []registration
}

type registration struct {
	serviceType string
	url         string
}

func newFixture(cfg *Config) *fixture {
	return &fixture{cfg: cfg, gw: NewGatewayClient(cfg)}
}

// isolate deregisters every instance the gateway currently has for the given types. close registers them
// back.
func (f *fixture) isolate(ctx context.Context, serviceTypes ...string) error {
	services, err := f.gw.Services(ctx)
	if err != nil {
		return fmt.Errorf("isolate: %w", err)
	}
	for _, t := range serviceTypes {
		for _, u := range services[t] {
			if err := f.gw.DeregisterInstance(ctx, t, u); err != nil {
				return fmt.Errorf("isolate %s: %w", t, err)
			}
			f.detached = append(f.detached, registration{serviceType: t, url: u})
		}
	}
	return nil
}

// stub starts a stub answering status and registers it under serviceType.
func (f *fixture) stub(ctx context.Context, serviceType, name string, status int) (*StubBackend, error) {
	s, err := StartStub(f.cfg, name, status)
	if err != nil {
		return nil, err
	}
	f.stubs = append(f.stubs, s)
	if err := f.gw.RegisterInstance(ctx, serviceType, s.URL); err != nil {
		return nil, fmt.Errorf("register %s: %w", name, err)
	}
	f.added = append(f.added, registration{serviceType: serviceType, url: s.URL})
	return s, nil
}

// close removes the stubs from the gateway, restores isolated instances and stops the stubs.
func (f *fixture) close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), restoreTimeout)
	defer cancel()

	var errs []error
	for _, r := range f.added {
		if err := f.gw.DeregisterInstance(ctx, r.serviceType, r.url); err != nil {
			errs = append(errs, err)
		}
	}
	for _, r := range f.detached {
		if err := f.gw.RegisterInstance(ctx, r.serviceType, r.url); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range f.stubs {
		s.Close()
	}
	return errors.Join(errs...)
}

// finish joins the scenario result with the cleanup result.
func (f *fixture) finish(ctx context.Context, err error) error {
	if cerr := f.close(ctx); cerr != nil {
		if err == nil {
			return fmt.Errorf("cleanup: %w", cerr)
		}
		return errors.Join(err, fmt.Errorf("cleanup: %w", cerr))
	}
	return err
}

func (c *Config) retries() int {
	if c.Retries > 0 {
		return c.Retries
	}
	return 3
}

func (c *Config) rateLimit() int {
	if c.RateLimit > 0 {
		return c.RateLimit
	}
	return 5
}
