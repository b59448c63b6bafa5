// Package network provides pre-configured HTTP clients for manifest retrieval.
//
// The spoofed client leverages refraction-networking/utls to emulate Chrome's
// Client Hello signature. Some video CDNs fingerprint TLS handshakes and
// reject the default Go client; a browser fingerprint gets the manifest
// request through.
//
// Protocol negotiation: HTTP/2 is attempted first (preferred by modern CDNs).
// If the handshake or request fails, the request transparently falls back to
// an HTTP/1.1 transport with forced protocol advertisement.
package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const spoofedTimeout = 30 * time.Second

// Spoofed is the shared client presenting a Chrome TLS fingerprint.
var Spoofed = &http.Client{
	Timeout:   spoofedTimeout,
	Transport: &fallbackTransport{},
}

// fallbackTransport routes requests through the h2 transport and retries
// once over HTTP/1.1 when the h2 path fails.
type fallbackTransport struct{}

func (fallbackTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := getH2Transport().RoundTrip(req)
	if err == nil {
		return resp, nil
	}

	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return nil, bodyErr
		}
		req.Body = body
	}
	return h1Transport.RoundTrip(req)
}

// h2Transport is a shared HTTP/2 transport for servers that negotiate h2.
var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once
)

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			// Use custom DialTLSContext to provide utls connections
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr, nil)
			},
		}
	})
	return h2Transport
}

// h1Transport is a shared HTTP/1.1 transport for servers that negotiate http/1.1.
var h1Transport = &http.Transport{
	DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLS(ctx, network, addr, []string{"http/1.1"})
	},
}

// dialTLS creates a TLS connection mimicking Chrome 120's fingerprint.
// With nil protos it advertises both h2 and http/1.1 (natural Chrome
// behavior); pass explicit protos to force a protocol.
func dialTLS(ctx context.Context, network, addr string, protos []string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: spoofedTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: protos,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
