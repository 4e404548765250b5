// Package fetcher retrieves a webpage and extracts the text of the elements
// marked as assessment details.
//
// # Overview
//
// A Fetcher performs a single blocking HTTP GET, parses the response with
// golang.org/x/net/html and returns the text content of every element whose
// class attribute contains the marker class, in document order.
//
// # Usage
//
//	f := fetcher.New(fetcher.WithTimeout(10 * time.Second))
//	texts, err := f.Fetch(ctx, "https://example.com/results")
//	if err != nil {
//	    // err matches fetcher.ErrNetwork
//	}
//
// # Failure Handling
//
// Transport failures, timeouts, non-2xx responses and non-HTML content are
// all reported as *NetworkError. There are no retries.
package fetcher
