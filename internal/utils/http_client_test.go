package utils

import "testing"

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient()

	if client == nil || client.Client == nil {
		t.Fatal("expected a ready-to-use client with an embedded *resty.Client")
	}
	if client.R() == nil {
		t.Fatal("expected the embedded resty client to produce requests")
	}
}

func TestNewHTTPClient_Independence(t *testing.T) {
	if NewHTTPClient().Client == NewHTTPClient().Client {
		t.Fatal("each call must return its own *resty.Client instance")
	}
}
