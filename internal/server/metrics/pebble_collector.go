package metrics

import (
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

// PebbleCollector exports a handful of pebble.Metrics as gauges and counters.
type PebbleCollector struct {
	source func() *pebble.Metrics

	compactions  *prometheus.Desc
	memtableSize *prometheus.Desc
	walSize      *prometheus.Desc
	diskUsage    *prometheus.Desc
	readAmp      *prometheus.Desc
}

func NewPebbleCollector(source func() *pebble.Metrics) *PebbleCollector {
	return &PebbleCollector{
		source: source,
		compactions: prometheus.NewDesc(
			"pebble_compaction_count_total",
			"Total number of compactions performed",
			nil, nil,
		),
		memtableSize: prometheus.NewDesc(
			"pebble_memtable_size_bytes",
			"Current size of the memtable in bytes",
			nil, nil,
		),
		walSize: prometheus.NewDesc(
			"pebble_wal_size_bytes",
			"Size of live WAL data in bytes",
			nil, nil,
		),
		diskUsage: prometheus.NewDesc(
			"pebble_disk_usage_bytes",
			"Total disk space used by the store",
			nil, nil,
		),
		readAmp: prometheus.NewDesc(
			"pebble_read_amplification",
			"Current read amplification",
			nil, nil,
		),
	}
}

func (pc *PebbleCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- pc.compactions
	ch <- pc.memtableSize
	ch <- pc.walSize
	ch <- pc.diskUsage
	ch <- pc.readAmp
}

func (pc *PebbleCollector) Collect(ch chan<- prometheus.Metric) {
	m := pc.source()
	if m == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(pc.compactions, prometheus.CounterValue, float64(m.Compact.Count))
	ch <- prometheus.MustNewConstMetric(pc.memtableSize, prometheus.GaugeValue, float64(m.MemTable.Size))
	ch <- prometheus.MustNewConstMetric(pc.walSize, prometheus.GaugeValue, float64(m.WAL.Size))
	ch <- prometheus.MustNewConstMetric(pc.diskUsage, prometheus.GaugeValue, float64(m.DiskSpaceUsage()))
	ch <- prometheus.MustNewConstMetric(pc.readAmp, prometheus.GaugeValue, float64(m.ReadAmp()))
}
