// Package metrics counts chore chart operations on a private Prometheus
// registry. Counters can be written to a file in the node_exporter
// textfile collector format; nothing listens on the network. Each run is a
// short process, so the file carries running totals: LoadTextfile adds the
// previous run's values before the next write.
package metrics

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/prometheus/common/model"
)

const (
	householdsCreatedName = "chorechart_households_created_total"
	completionsLoggedName = "chorechart_completions_logged_total"
	removalsName          = "chorechart_removals_total"
	wipesName             = "chorechart_wipes_total"
	errorsName            = "chorechart_operation_errors_total"
)

// Recorder holds the operation counters. A nil *Recorder is valid and
// records nothing, so callers never need to guard their calls.
type Recorder struct {
	registry *prometheus.Registry

	householdsCreated prometheus.Counter
	completionsLogged prometheus.Counter
	removals          *prometheus.CounterVec
	wipes             prometheus.Counter
	errors            *prometheus.CounterVec
}

// New creates a Recorder with its counters registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		householdsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: householdsCreatedName,
			Help: "Households created.",
		}),
		completionsLogged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: completionsLoggedName,
			Help: "Chore completions logged, summed over increments.",
		}),
		removals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: removalsName,
			Help: "Participants and chores removed from households.",
		}, []string{"kind"}),
		wipes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: wipesName,
			Help: "Confirmed wipes of all data.",
		}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: errorsName,
			Help: "Failed operations by operation name.",
		}, []string{"op"}),
	}
	r.registry.MustRegister(r.householdsCreated, r.completionsLogged, r.removals, r.wipes, r.errors)
	return r
}

// Gatherer exposes the registry, mainly for tests.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

func (r *Recorder) HouseholdCreated() {
	if r == nil {
		return
	}
	r.householdsCreated.Inc()
}

func (r *Recorder) CompletionsLogged(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.completionsLogged.Add(float64(n))
}

// Removed counts one removal of kind ("participant" or "chore").
func (r *Recorder) Removed(kind string) {
	if r == nil {
		return
	}
	r.removals.WithLabelValues(kind).Inc()
}

func (r *Recorder) Wiped() {
	if r == nil {
		return
	}
	r.wipes.Inc()
}

// Failed counts a failed operation.
func (r *Recorder) Failed(op string) {
	if r == nil {
		return
	}
	r.errors.WithLabelValues(op).Inc()
}

// WriteTextfile writes the current counters to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}

// LoadTextfile adds the counter values found in a textfile written by an
// earlier run. A missing file is not an error.
func (r *Recorder) LoadTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open metrics file: %w", err)
	}
	defer f.Close()

	parser := expfmt.NewTextParser(model.UTF8Validation)
	families, err := parser.TextToMetricFamilies(f)
	if err != nil {
		return fmt.Errorf("failed to parse metrics file: %w", err)
	}

	plain := map[string]prometheus.Counter{
		householdsCreatedName: r.householdsCreated,
		completionsLoggedName: r.completionsLogged,
		wipesName:             r.wipes,
	}
	labelled := map[string]struct {
		vec   *prometheus.CounterVec
		label string
	}{
		removalsName: {r.removals, "kind"},
		errorsName:   {r.errors, "op"},
	}

	for name, family := range families {
		for _, m := range family.GetMetric() {
			v := m.GetCounter().GetValue()
			if v <= 0 {
				continue
			}
			if c, ok := plain[name]; ok {
				c.Add(v)
				continue
			}
			if l, ok := labelled[name]; ok {
				if value, ok := labelValue(m, l.label); ok {
					l.vec.WithLabelValues(value).Add(v)
				}
			}
		}
	}
	return nil
}

func labelValue(m *dto.Metric, name string) (string, bool) {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue(), true
		}
	}
	return "", false
}
