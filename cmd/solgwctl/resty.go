package main

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// newRestyClient builds the one fixed-timeout resty client every CLI
// subcommand that talks to a live RPC endpoint shares.
func newRestyClient() *resty.Client {
	return resty.New().SetTimeout(15 * time.Second)
}
