package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/denis-svg/Crash-Game/integrationtests/scenario"
)

const (
	defaultGateway  = "http://localhost:8080"
	defaultStubHost = "127.0.0.1"
)

func main() {
	list := flag.Bool("list", false, "list available scenarios and exit")
	scenarioName := flag.String("scenario", "", "scenario to run (or pass as positional arg)")
	gateway := flag.String("gateway", "", "gateway URL (default: http://localhost:8080 or GATEWAY_URL env)")
	stubHost := flag.String("stub-host", "", "host the gateway uses to reach stub backends (default: 127.0.0.1 or STUB_HOST env)")
	stubBind := flag.String("stub-bind", "", "interface stub backends listen on (default: all)")
	retries := flag.Int("retries", envInt("RETRY_COUNT", 3), "gateway attempts per instance (RETRY_COUNT)")
	rateLimit := flag.Int("rate-limit", envInt("RATE_LIMIT_COUNT", 5), "gateway requests per window (RATE_LIMIT_COUNT)")
	flag.Parse()

	if *gateway == "" {
		*gateway = os.Getenv("GATEWAY_URL")
	}
	if *gateway == "" {
		*gateway = defaultGateway
	}
	if *stubHost == "" {
		*stubHost = os.Getenv("STUB_HOST")
	}
	if *stubHost == "" {
		*stubHost = defaultStubHost
	}

	if *list {
		for _, name := range scenario.Names() {
			fmt.Println(name)
		}
		os.Exit(0)
	}

	name := *scenarioName
	if name == "" {
		args := flag.Args()
		if len(args) > 0 {
			name = args[0]
		}
	}
	if name == "" {
		fmt.Fprintln(os.Stderr, "usage: integrationtests [--list] [--scenario=NAME] [--gateway=URL] [--stub-host=HOST] [--stub-bind=ADDR] [--retries=N] [--rate-limit=N] [scenario_name]")
		fmt.Fprintln(os.Stderr, "  use --list to list scenarios")
		os.Exit(2)
	}

	cfg := &scenario.Config{
		GatewayURL: strings.TrimRight(*gateway, "/"),
		StubHost:   *stubHost,
		StubBind:   *stubBind,
		Retries:    *retries,
		RateLimit:  *rateLimit,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	err := scenario.Run(name, ctx, cfg)

	fmt.Println("\n=== Scenario Result ===")
	fmt.Printf("Scenario: %s\n", name)

	if err != nil {
		fmt.Printf("Status: FAILED\n")
		fmt.Printf("Error: %v\n", err)
		var unknown *scenario.UnknownScenarioError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "\navailable scenarios: %s\n", strings.Join(scenario.Names(), ", "))
			fmt.Println("=====================")
			os.Exit(2)
		}
		fmt.Println("=====================")
		os.Exit(1)
	}

	fmt.Printf("Status: PASSED\n")
	fmt.Println("=====================")
	os.Exit(0)
}

func envInt(env string, def int) int {
	v, err := strconv.Atoi(os.Getenv(env))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
