// Package network provides the shared HTTP client and the JSON resource client used for every color service call.
package network

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/samber/lo"
	"golang.org/x/net/publicsuffix"
)

// Client is the HTTP client shared by every resource call.
// It carries no overall timeout: callers bound each call with a context.
var Client = &http.Client{
	Transport: newTransport(),
	Jar:       lo.Must(cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})),
}

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 16
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ExpectContinueTimeout = time.Second
	return t
}
