package observability

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PushJob is the Pushgateway job name the explorer reports under.
const PushJob = "dataset_explorer"

// Push sends every metric in g to the Pushgateway at url, grouped by the
// dataset kind. It replaces what a previous run pushed for that group. The
// grouping label is "kind" since rows_loaded_total already carries a
// "dataset" label.
func Push(ctx context.Context, url, kind string, g prometheus.Gatherer) error {
	pusher := push.New(url, PushJob).Gatherer(g)
	if kind != "" {
		pusher = pusher.Grouping("kind", kind)
	}
	if err := pusher.PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", url, err)
	}
	return nil
}
