// Package tlsutil loads TLS credentials for the origination gRPC server.
package tlsutil

import (
	"crypto/tls"
	"errors"
	"fmt"

	"google.golang.org/grpc/credentials"
)

// ErrIncompletePair is returned when only one of the cert/key paths is set.
var ErrIncompletePair = errors.New("tlsutil: both certificate and key files are required")

// ServerTLSConfig loads TLS credentials for a gRPC server from cert and key files.
func ServerTLSConfig(certFile, keyFile string) (credentials.TransportCredentials, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("tlsutil: load server key pair: %w", err)
	}

	return credentials.NewTLS(&tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}), nil
}

// OptionalServerTLS returns nil credentials when neither path is set, so the
// server runs in plaintext. Supplying exactly one path is an error.
func OptionalServerTLS(certFile, keyFile string) (credentials.TransportCredentials, error) {
	switch {
	case certFile == "" && keyFile == "":
		return nil, nil
	case certFile == "" || keyFile == "":
		return nil, ErrIncompletePair
	}
	return ServerTLSConfig(certFile, keyFile)
}
