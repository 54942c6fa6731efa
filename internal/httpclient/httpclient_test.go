package httpclient

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beaconhq/beacon-go/internal/testutil"
)

func TestNewHTTPClient_DefaultTimeout(t *testing.T) {
	c := testutil.UnitTest(t)

	client := NewHTTPClient(c)

	assert.Equal(t, defaultTimeout, client.Timeout)
}

func TestNewHTTPClient_ConfiguredTimeout(t *testing.T) {
	c := testutil.UnitTest(t)
	c.SetTimeout(3 * time.Second)

	client := NewHTTPClient(c)

	assert.Equal(t, 3*time.Second, client.Timeout)
}

func TestNewHTTPClient_Insecure(t *testing.T) {
	c := testutil.UnitTest(t)
	c.SetInsecure(true)

	client := NewHTTPClient(c)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, transport.TLSClientConfig)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify) //nolint:gosec // asserting the configured behavior
	assert.IsType(t, &tls.Config{}, transport.TLSClientConfig)
}
