package utils

import (
	"crypto/tls"
	"crypto/x509"
	"net/http"
	"os"
	"time"

	"github.com/alpacax/vpnexclude/pkg/config"
	"github.com/rs/zerolog/log"
)

// NewHTTPClient creates an HTTP client with TLS configuration from settings
func NewHTTPClient(settings config.Settings) *http.Client {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: !settings.SSLVerify,
	}

	if settings.CaCert != "" {
		caCertPool := x509.NewCertPool()
		if caCert, err := os.ReadFile(settings.CaCert); err == nil {
			caCertPool.AppendCertsFromPEM(caCert)
			tlsConfig.RootCAs = caCertPool
		} else {
			log.Error().Err(err).Msg("Failed to read CA certificate.")
		}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = tlsConfig

	return &http.Client{
		Transport: transport,
		Timeout:   time.Duration(settings.Timeout) * time.Second,
	}
}

func IsSuccessStatusCode(code int) bool {
	return code/100 == 2
}
