package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/adrianbrad/queue"
	"github.com/alpacax/vpnexclude/pkg/dashboard"
	"github.com/alpacax/vpnexclude/pkg/exclusion"
	"github.com/rs/zerolog/log"
)

// State is the lifecycle position of one network within a run.
type State int

const (
	StatePending State = iota
	StateAttempted
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAttempted:
		return "attempted"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome records what happened to one network.
type Outcome struct {
	Network dashboard.Network
	State   State
	Err     error
}

type exclusionWriter interface {
	UpdateNetworkApplianceTrafficShapingVpnExclusions(ctx context.Context, networkID string, exclusions exclusion.Set) (*exclusion.Set, error)
}

// Applier writes the exclusion payload to each network in turn.
type Applier struct {
	api       exclusionWriter
	reporter  Reporter
	rules     []exclusion.Rule
	existing  map[string]exclusion.Set
	overwrite bool
}

// NewApplier prepares a batch. existing may be nil; it is only consulted when
// overwrite is false.
func NewApplier(api exclusionWriter, reporter Reporter, rules []exclusion.Rule, existing map[string]exclusion.Set, overwrite bool) *Applier {
	return &Applier{
		api:       api,
		reporter:  reporter,
		rules:     rules,
		existing:  existing,
		overwrite: overwrite,
	}
}

// Apply issues exactly one write per network, in order. A request error
// from the dashboard fails that network only; any other error stops the
// batch and is returned with the outcomes gathered so far.
func (a *Applier) Apply(ctx context.Context, networks []dashboard.Network) ([]Outcome, error) {
	outcomes := make([]Outcome, len(networks))
	items := make([]*Outcome, len(networks))
	for i, network := range networks {
		outcomes[i] = Outcome{Network: network, State: StatePending}
		items[i] = &outcomes[i]
	}
	pending := queue.NewBlocking(items)

	a.reporter.StartProgress(len(networks))
	defer a.reporter.StopProgress()

	for index := 1; ; index++ {
		outcome, err := pending.Get()
		if errors.Is(err, queue.ErrNoElementsAvailable) {
			break
		}
		if err != nil {
			return outcomes, fatal("dequeue network", err)
		}

		if err := a.applyOne(ctx, outcome, index, len(networks)); err != nil {
			untouched := pending.Clear()
			ids := make([]string, 0, len(untouched))
			for _, left := range untouched {
				ids = append(ids, left.Network.ID)
			}
			log.Warn().Strs("networks", ids).Msgf("%d networks left unchanged.", len(ids))
			return outcomes, err
		}
		a.reporter.Advance()
	}

	return outcomes, nil
}

func (a *Applier) applyOne(ctx context.Context, outcome *Outcome, index, total int) error {
	network := outcome.Network
	a.reporter.NetworkStarted(network.Name, index, total)

	var existing *exclusion.Set
	if set, ok := a.existing[network.ID]; ok && !a.overwrite {
		existing = &set
	}
	payload := exclusion.BuildPayload(a.rules, existing, a.overwrite)

	outcome.State = StateAttempted
	_, err := a.api.UpdateNetworkApplianceTrafficShapingVpnExclusions(ctx, network.ID, payload)
	if err == nil {
		outcome.State = StateSucceeded
		log.Debug().Str("network", network.ID).Int("custom", len(payload.Custom)).Msg("Exclusions updated.")
		a.reporter.Successf("Successfully added %d exclusion rules!", len(a.rules))
		return nil
	}

	runErr := &Error{Kind: writeErrorKind(err), Op: "update exclusions of", NetworkID: network.ID, Err: err}
	outcome.State = StateFailed
	outcome.Err = runErr

	if runErr.Kind == KindFatal {
		log.Error().Err(err).Str("network", network.ID).Msg("Aborting run.")
		return runErr
	}

	log.Warn().Err(err).Str("network", network.ID).Msg("Exclusions rejected.")
	a.reporter.Errorf("Error: %s", err)
	return nil
}
