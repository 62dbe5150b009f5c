package server

import (
	"sync"
	"time"
)

// Metrics holds in-process counters for the transfer endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Upload metrics
	uploadsTotal        int64
	uploadBytesTotal    int64
	uploadErrorsTotal   int64
	uploadDurationTotal time.Duration

	// Download metrics
	downloadsTotal        int64
	downloadBytesTotal    int64
	downloadErrorsTotal   int64
	downloadDurationTotal time.Duration

	// Listing metrics
	listingsTotal          int64
	listingsSwallowedTotal int64

	// System metrics
	requestsTotal    int64
	requestErrors4xx int64
	requestErrors5xx int64
}

var globalMetrics = &Metrics{}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordUpload records a successful upload
func (m *Metrics) RecordUpload(bytes int64, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadsTotal++
	m.uploadBytesTotal += bytes
	m.uploadDurationTotal += duration
}

// RecordUploadError records an upload error
func (m *Metrics) RecordUploadError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploadErrorsTotal++
}

// RecordDownload records a successful download
func (m *Metrics) RecordDownload(bytes int64, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadsTotal++
	m.downloadBytesTotal += bytes
	m.downloadDurationTotal += duration
}

// RecordDownloadError records a download error
func (m *Metrics) RecordDownloadError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.downloadErrorsTotal++
}

// RecordListing records a listing response
func (m *Metrics) RecordListing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listingsTotal++
}

// RecordListSwallowed records an enumeration failure converted to an
// empty success listing.
func (m *Metrics) RecordListSwallowed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listingsSwallowedTotal++
}

// RecordRequest records an HTTP request by status class
func (m *Metrics) RecordRequest(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestsTotal++
	switch {
	case status >= 500:
		m.requestErrors5xx++
	case status >= 400:
		m.requestErrors4xx++
	}
}

// MetricsSnapshot is a consistent copy of all counters.
type MetricsSnapshot struct {
	UploadsTotal           int64
	UploadBytesTotal       int64
	UploadErrorsTotal      int64
	DownloadsTotal         int64
	DownloadBytesTotal     int64
	DownloadErrorsTotal    int64
	ListingsTotal          int64
	ListingsSwallowedTotal int64
	RequestsTotal          int64
	RequestErrors4xx       int64
	RequestErrors5xx       int64
}

// Snapshot returns a point-in-time copy of the counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return MetricsSnapshot{
		UploadsTotal:           m.uploadsTotal,
		UploadBytesTotal:       m.uploadBytesTotal,
		UploadErrorsTotal:      m.uploadErrorsTotal,
		DownloadsTotal:         m.downloadsTotal,
		DownloadBytesTotal:     m.downloadBytesTotal,
		DownloadErrorsTotal:    m.downloadErrorsTotal,
		ListingsTotal:          m.listingsTotal,
		ListingsSwallowedTotal: m.listingsSwallowedTotal,
		RequestsTotal:          m.requestsTotal,
		RequestErrors4xx:       m.requestErrors4xx,
		RequestErrors5xx:       m.requestErrors5xx,
	}
}
