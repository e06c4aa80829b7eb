package app

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// writeMetrics writes every metric family of gatherer in the Prometheus text format.
func writeMetrics(out io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	if _, err = fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}

	for _, family := range families {
		if _, err = expfmt.MetricFamilyToText(out, family); err != nil {
			return fmt.Errorf("failed to write metric family '%s': %w", family.GetName(), err)
		}
	}

	return nil
}
