package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alpacax/vpnexclude/pkg/config"
	"github.com/alpacax/vpnexclude/pkg/exclusion"
	"github.com/alpacax/vpnexclude/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDashboard struct {
	mu     sync.Mutex
	writes map[string]exclusion.Set
	calls  []string
}

func newFakeDashboard(t *testing.T) (*fakeDashboard, *httptest.Server) {
	t.Helper()

	fd := &fakeDashboard{writes: map[string]exclusion.Set{}}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/organizations", func(w http.ResponseWriter, r *http.Request) {
		fd.record(r)
		_, _ = io.WriteString(w, `[{"id":"42","name":"HQ"}]`)
	})
	mux.HandleFunc("GET /api/v1/organizations/42/networks", func(w http.ResponseWriter, r *http.Request) {
		fd.record(r)
		_, _ = io.WriteString(w, `[
			{"id":"N_1","name":"Branch 1","productTypes":["appliance"]},
			{"id":"N_2","name":"Campus","productTypes":["switch","wireless"]},
			{"id":"N_3","name":"Branch 3","productTypes":["appliance","switch"]},
			{"id":"N_4","name":"Branch 4","productTypes":["appliance"]}
		]`)
	})
	mux.HandleFunc("GET /api/v1/organizations/42/appliance/trafficShaping/vpnExclusions/byNetwork", func(w http.ResponseWriter, r *http.Request) {
		fd.record(r)
		_, _ = io.WriteString(w, `{"items":[{"networkId":"N_4","networkName":"Branch 4",
			"custom":[{"protocol":"icmp","destination":"10.9.9.9"}],
			"majorApplications":[{"id":"meraki:vpnExclusion/application/2","name":"Office 365 Sharepoint"}]}]}`)
	})
	mux.HandleFunc("PUT /api/v1/networks/{id}/appliance/trafficShaping/vpnExclusions", func(w http.ResponseWriter, r *http.Request) {
		fd.record(r)
		id := r.PathValue("id")
		if id == "N_3" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"errors":["Network N_3 does not support VPN exclusions"]}`)
			return
		}

		var set exclusion.Set
		if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fd.mu.Lock()
		fd.writes[id] = set
		fd.mu.Unlock()
		_ = json.NewEncoder(w).Encode(set)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fd, srv
}

func (fd *fakeDashboard) record(r *http.Request) {
	fd.mu.Lock()
	defer fd.mu.Unlock()
	fd.calls = append(fd.calls, r.Method+" "+r.URL.Path)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.APIKeyEnv, "")
	t.Setenv("HOME", t.TempDir())

	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetErr(&buf)
	RootCmd.SetArgs(args)
	err := RootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeRules(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exclusions.csv")
	require.NoError(t, os.WriteFile(path, []byte("destination,port,protocol\n10.0.0.0/8,443,TCP\n"), 0600))
	return path
}

func TestApplyMergeContinuesPastRejectedNetwork(t *testing.T) {
	fd, srv := newFakeDashboard(t)

	out, err := execute(t,
		"--api-key", "secret",
		"--base-url", srv.URL+"/api/v1",
		"--org", "HQ",
		"--csv", writeRules(t),
		"--overwrite=false",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Meraki VPN Exclusion Tool")
	assert.Contains(t, out, "Found 3 Appliance Networks")
	assert.Contains(t, out, "Network N_3 does not support VPN exclusions")
	assert.Contains(t, out, "Processing Network: Branch 4 (3 of 3)")

	require.Len(t, fd.writes, 2)
	newRule := exclusion.Rule{Protocol: "tcp", Port: "443", Destination: "10.0.0.0/8"}
	assert.Equal(t, []exclusion.Rule{newRule}, fd.writes["N_1"].Custom)
	assert.Equal(t, []exclusion.Rule{newRule, {Protocol: "icmp", Destination: "10.9.9.9"}}, fd.writes["N_4"].Custom)
	assert.Len(t, fd.writes["N_4"].MajorApplications, 1)
}

func TestApplyUnknownOrganization(t *testing.T) {
	fd, srv := newFakeDashboard(t)

	out, err := execute(t,
		"--api-key", "secret",
		"--base-url", srv.URL+"/api/v1",
		"--org", "hq",
		"--csv", writeRules(t),
		"--overwrite=true",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrOrganizationNotFound)
	assert.Contains(t, out, "Error: Org. Name hq not found...")
	assert.Equal(t, []string{"GET /api/v1/organizations"}, fd.calls)
}

func TestNetworksCommand(t *testing.T) {
	fd, srv := newFakeDashboard(t)

	out, err := execute(t, "networks",
		"--api-key", "secret",
		"--base-url", srv.URL+"/api/v1",
		"--org", "HQ",
		"--csv", "",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "Found 3 Appliance Networks in HQ")
	assert.Contains(t, out, "Branch 4")
	assert.NotContains(t, out, "Campus")
	for _, call := range fd.calls {
		assert.NotContains(t, call, "PUT")
	}
}

func TestNetworksUnknownOrganization(t *testing.T) {
	fd, srv := newFakeDashboard(t)

	out, err := execute(t, "networks",
		"--api-key", "secret",
		"--base-url", srv.URL+"/api/v1",
		"--org", "Lab",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, runner.ErrOrganizationNotFound)
	assert.Contains(t, out, "Error: Org. Name Lab not found...")
	assert.Equal(t, []string{"GET /api/v1/organizations"}, fd.calls)
}
