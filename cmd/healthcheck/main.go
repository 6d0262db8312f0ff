package main

import (
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/DanKadrios/SMTLite/internal/constants"
)

// target builds the version URL from SMTLITE_SERVER_ADDRESS (default :8080).
func target() string {
	addr := os.Getenv(constants.EnvConfigPrefix + "_SERVER_ADDRESS")
	if addr == "" {
		addr = ":8080"
	}
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		host, port = "", strings.TrimPrefix(addr, ":")
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return "http://" + net.JoinHostPort(host, port) + constants.RouteAPIPrefix + constants.RouteVersion
}

func main() {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(target())
	if err != nil {
		os.Exit(1)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
	os.Exit(0)
}
