package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTarget(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{"", "http://127.0.0.1:8080/api/version"},
		{":9090", "http://127.0.0.1:9090/api/version"},
		{"0.0.0.0:7000", "http://127.0.0.1:7000/api/version"},
		{"localhost:7000", "http://localhost:7000/api/version"},
	}
	for _, tt := range tests {
		t.Setenv("SMTLITE_SERVER_ADDRESS", tt.addr)
		assert.Equal(t, tt.want, target(), tt.addr)
	}
}
