// Package metrics provides Prometheus metrics for observability.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "assetgateway"

var (
	// StorageOperationsTotal tracks calls to the object storage backend.
	// Labels:
	//   - operation: put, presign, head, delete, list
	//   - status: success, not_found, error
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_operations_total",
			Help:      "Total number of object storage operations",
		},
		[]string{"operation", "status"},
	)

	// StorageOperationDuration observes storage call latency.
	StorageOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "storage_operation_duration_seconds",
			Help:      "Latency of object storage operations",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	// UploadSizeBytes observes accepted upload sizes.
	// Labels:
	//   - kind: video, audio
	UploadSizeBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_size_bytes",
			Help:      "Size of uploaded files",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 4, 8),
		},
		[]string{"kind"},
	)

	// ListDroppedObjectsTotal counts objects omitted from a listing because their
	// metadata could not be fetched.
	ListDroppedObjectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "list_dropped_objects_total",
			Help:      "Total number of objects dropped from listings after a metadata fetch failure",
		},
	)
)

// Storage operation constants.
const (
	StorageOpPut     = "put"
	StorageOpPresign = "presign"
	StorageOpHead    = "head"
	StorageOpDelete  = "delete"
	StorageOpList    = "list"
)

// Storage status constants.
const (
	StorageStatusSuccess  = "success"
	StorageStatusNotFound = "not_found"
	StorageStatusError    = "error"
)
