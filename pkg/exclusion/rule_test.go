package exclusion

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	newRules = []Rule{
		{Protocol: "tcp", Port: "443", Destination: "10.0.0.0/8"},
		{Protocol: "udp", Port: "53", Destination: "1.1.1.1"},
	}
	existing = &Set{
		Custom: []Rule{
			{Protocol: "tcp", Port: "443", Destination: "10.0.0.0/8"},
			{Protocol: "icmp", Destination: "192.168.0.1"},
		},
		MajorApplications: []json.RawMessage{
			json.RawMessage(`{"id":"meraki:vpnExclusion/application/2","name":"Office 365 Sharepoint"}`),
		},
	}
)

func TestBuildPayloadMerge(t *testing.T) {
	got := BuildPayload(newRules, existing, false)

	want := Set{
		Custom: []Rule{
			newRules[0],
			newRules[1],
			existing.Custom[0],
			existing.Custom[1],
		},
		MajorApplications: existing.MajorApplications,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildPayload() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildPayloadOverwrite(t *testing.T) {
	got := BuildPayload(newRules, existing, true)

	assert.Equal(t, newRules, got.Custom)
	require.NotNil(t, got.MajorApplications)
	assert.Empty(t, got.MajorApplications)
}

func TestBuildPayloadMergeWithoutExisting(t *testing.T) {
	got := BuildPayload(newRules, nil, false)

	assert.Equal(t, newRules, got.Custom)
	assert.Empty(t, got.MajorApplications)
}

func TestBuildPayloadDoesNotAlias(t *testing.T) {
	rules := make([]Rule, 1, 4)
	rules[0] = newRules[0]

	got := BuildPayload(rules, existing, false)
	got.Custom[0].Port = "8443"

	assert.Equal(t, "443", rules[0].Port)
	assert.Len(t, existing.Custom, 2)
}

func TestSetJSON(t *testing.T) {
	data, err := json.Marshal(BuildPayload(newRules[:1], nil, true))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"custom":[{"protocol":"tcp","port":"443","destination":"10.0.0.0/8"}],"majorApplications":[]}`,
		string(data))

	data, err = json.Marshal(Rule{Protocol: "icmp", Destination: "10.0.0.1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"protocol":"icmp","port":"","destination":"10.0.0.1"}`, string(data))

	var set Set
	require.NoError(t, json.Unmarshal([]byte(`{"custom":[{"protocol":"icmp","destination":"1.2.3.4"}]}`), &set))
	assert.Equal(t, []Rule{{Protocol: "icmp", Destination: "1.2.3.4"}}, set.Custom)
}
