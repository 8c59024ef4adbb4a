package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "None"},
		{"http 404", fmt.Errorf("%w: status 404 Not Found fetching 'x'", ErrHTTPStatus), "HTTP_404"},
		{"http 403", fmt.Errorf("%w: status 403 Forbidden fetching 'x'", ErrHTTPStatus), "HTTP_403"},
		{"http 429", fmt.Errorf("%w: status 429 Too Many Requests fetching 'x'", ErrHTTPStatus), "HTTP_429"},
		{"http 500", fmt.Errorf("%w: status 500 Internal Server Error fetching 'x'", ErrHTTPStatus), "HTTP_5xx"},
		{"http other", fmt.Errorf("%w: status 418 fetching 'x'", ErrHTTPStatus), "HTTP_Other"},
		{"timeout", fmt.Errorf("%w: fetching 'x'", ErrTimeout), "Network_Timeout"},
		{"connection", fmt.Errorf("%w: fetching 'x'", ErrConnection), "Network_Connection"},
		{"request", fmt.Errorf("%w: fetching 'x'", ErrRequest), "Network_Other"},
		{"parsing html", fmt.Errorf("%w: bad markup", ErrParsing), "Content_ParsingHTML"},
		{"enrichment", fmt.Errorf("%w: model call failed", ErrEnrichment), "Enrichment_Failed"},
		{"no website", ErrNoWebsite, "Input_NoWebsite"},
		{"context canceled", context.Canceled, "System_ContextCanceled"},
		{"deadline", context.DeadlineExceeded, "System_ContextDeadlineExceeded"},
		{"refused fallback", errors.New("dial tcp: connection refused"), "Network_ConnectionRefused"},
		{"dns fallback", errors.New("lookup x: no such host"), "Network_DNSLookup"},
		{"unknown", errors.New("something odd"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategorizeError(tt.err); got != tt.want {
				t.Errorf("CategorizeError(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
