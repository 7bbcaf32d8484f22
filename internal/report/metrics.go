package report

import (
	"github.com/ALT-F4-LLC/sonarexport/internal/model"
	"github.com/ALT-F4-LLC/sonarexport/internal/sonar"
)

// MetricRecords maps each measure to a metric record. Missing values are
// reported as model.NotAvailable.
func MetricRecords(measures []sonar.Measure) []model.MetricRecord {
	records := make([]model.MetricRecord, 0, len(measures))
	for _, m := range measures {
		raw := model.NotAvailable
		if m.Value != nil {
			raw = *m.Value
		}
		records = append(records, model.MetricRecord{
			Metric:   m.Metric,
			Value:    model.DisplayValue(m.Metric, raw),
			RawValue: raw,
		})
	}
	return records
}
