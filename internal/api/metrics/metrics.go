// Package metrics defines all custom Prometheus metrics for the
// client-portal API. It is the single source of truth for metric names,
// labels, and help strings; metrics register themselves with the default
// registry via promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// UploadsTotal counts stored files.
// Label:
//   - type: "upload" (client input) or "download" (admin deliverable)
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of files stored, by file type.",
	},
	[]string{"type"},
)

// UploadBytes measures the size of stored files. Uploads are read fully
// into memory, so this doubles as a watch on the body-limit setting.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_bytes",
		Help:      "Size distribution of stored files in bytes.",
		Buckets:   prometheus.ExponentialBuckets(1024, 4, 8), // 1KiB .. 16MiB
	},
)

// DownloadsTotal counts successful file retrievals.
var DownloadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Total number of successful file downloads.",
	},
)

// AccessDeniedTotal counts forbidden outcomes from the access-control
// evaluator.
// Label:
//   - resource: "project", "invoice", or "file"
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of forbidden access decisions, by resource.",
	},
	[]string{"resource"},
)

// ProjectCacheTotal counts project-view cache lookups.
// Label:
//   - result: "hit" or "miss"
var ProjectCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "project_cache_total",
		Help:      "Total number of project view cache lookups, by result.",
	},
	[]string{"result"},
)

// OrphanBlobsSweptTotal counts blobs removed by the reconciliation sweep.
var OrphanBlobsSweptTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orphan_blobs_swept_total",
		Help:      "Total number of orphaned upload blobs removed by the sweeper.",
	},
)
