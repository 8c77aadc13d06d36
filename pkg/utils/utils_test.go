package utils

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/alpacax/vpnexclude/pkg/config"
	"github.com/alpacax/vpnexclude/pkg/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient(t *testing.T) {
	client := NewHTTPClient(config.Settings{SSLVerify: false, Timeout: 15})

	assert.Equal(t, 15*time.Second, client.Timeout)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
	assert.Nil(t, transport.TLSClientConfig.RootCAs)
}

func TestNewHTTPClientMissingCaCert(t *testing.T) {
	client := NewHTTPClient(config.Settings{SSLVerify: true, CaCert: "/nonexistent/ca.pem"})

	transport := client.Transport.(*http.Transport)
	assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
	assert.Nil(t, transport.TLSClientConfig.RootCAs)
}

func TestIsSuccessStatusCode(t *testing.T) {
	assert.True(t, IsSuccessStatusCode(http.StatusOK))
	assert.True(t, IsSuccessStatusCode(http.StatusNoContent))
	assert.False(t, IsSuccessStatusCode(http.StatusFound))
	assert.False(t, IsSuccessStatusCode(http.StatusTooManyRequests))
}

func TestGetUserAgent(t *testing.T) {
	ua := GetUserAgent("vpnexclude")
	assert.True(t, strings.HasPrefix(ua, "vpnexclude/"+version.Version+" ("), ua)
	assert.Equal(t, ua, GetUserAgent("vpnexclude"))
}
