// Package relay fetches feed payloads through a rotating list of relay
// endpoints, falling back to the next relay when an attempt fails.
package relay

import (
	"fmt"
	"net/url"
	"sync"
)

// Endpoint is a relay URL template with a %s placeholder for the
// query-escaped target URL.
type Endpoint string

// Wrap builds the relayed URL for target.
func (e Endpoint) Wrap(target string) string {
	return fmt.Sprintf(string(e), url.QueryEscape(target))
}

// Rotator hands out relay endpoints round-robin. The cursor is shared by
// every cascade in flight; interleaved advancement across concurrent fetches
// is fine, relay selection is best-effort rather than fairness-critical.
type Rotator struct {
	mu        sync.Mutex
	endpoints []Endpoint
	cursor    int
}

func NewRotator(templates []string) *Rotator {
	eps := make([]Endpoint, len(templates))
	for i, t := range templates {
		eps[i] = Endpoint(t)
	}
	return &Rotator{endpoints: eps}
}

// Next returns the endpoint at the current cursor and advances it modulo
// the relay count.
func (r *Rotator) Next() Endpoint {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.endpoints[r.cursor%len(r.endpoints)]
	r.cursor = (r.cursor + 1) % len(r.endpoints)
	return e
}

// Len reports the number of configured relays, which is also the number of
// attempts a cascade makes per URL.
func (r *Rotator) Len() int {
	return len(r.endpoints)
}
