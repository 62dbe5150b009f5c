// prometheus.go - Prometheus text exposition of the in-process counters.
package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

var serverStartTime = time.Now()

// PrometheusMetricsHandler serves GET /metrics in Prometheus text format.
func PrometheusMetricsHandler(build BuildInfo) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		snapshot := GetMetrics().Snapshot()

		var output strings.Builder

		output.WriteString("# HELP fd_info Application version info\n")
		output.WriteString("# TYPE fd_info gauge\n")
		output.WriteString(fmt.Sprintf("fd_info{version=%q,commit=%q} 1\n\n", build.Version, build.Commit))

		output.WriteString("# HELP fd_requests_total Total number of HTTP requests\n")
		output.WriteString("# TYPE fd_requests_total counter\n")
		output.WriteString(fmt.Sprintf("fd_requests_total %d\n\n", snapshot.RequestsTotal))

		output.WriteString("# HELP fd_request_errors_total HTTP error responses by class\n")
		output.WriteString("# TYPE fd_request_errors_total counter\n")
		output.WriteString(fmt.Sprintf("fd_request_errors_total{class=\"4xx\"} %d\n", snapshot.RequestErrors4xx))
		output.WriteString(fmt.Sprintf("fd_request_errors_total{class=\"5xx\"} %d\n\n", snapshot.RequestErrors5xx))

		output.WriteString("# HELP fd_uploads_total Total number of file uploads\n")
		output.WriteString("# TYPE fd_uploads_total counter\n")
		output.WriteString(fmt.Sprintf("fd_uploads_total %d\n\n", snapshot.UploadsTotal))

		output.WriteString("# HELP fd_upload_bytes_total Total bytes accepted by uploads\n")
		output.WriteString("# TYPE fd_upload_bytes_total counter\n")
		output.WriteString(fmt.Sprintf("fd_upload_bytes_total %d\n\n", snapshot.UploadBytesTotal))

		output.WriteString("# HELP fd_upload_errors_total Total number of failed uploads\n")
		output.WriteString("# TYPE fd_upload_errors_total counter\n")
		output.WriteString(fmt.Sprintf("fd_upload_errors_total %d\n\n", snapshot.UploadErrorsTotal))

		output.WriteString("# HELP fd_downloads_total Total number of file downloads\n")
		output.WriteString("# TYPE fd_downloads_total counter\n")
		output.WriteString(fmt.Sprintf("fd_downloads_total %d\n\n", snapshot.DownloadsTotal))

		output.WriteString("# HELP fd_download_bytes_total Total bytes served by downloads\n")
		output.WriteString("# TYPE fd_download_bytes_total counter\n")
		output.WriteString(fmt.Sprintf("fd_download_bytes_total %d\n\n", snapshot.DownloadBytesTotal))

		output.WriteString("# HELP fd_download_errors_total Total number of failed downloads\n")
		output.WriteString("# TYPE fd_download_errors_total counter\n")
		output.WriteString(fmt.Sprintf("fd_download_errors_total %d\n\n", snapshot.DownloadErrorsTotal))

		output.WriteString("# HELP fd_listings_total Total number of listing responses\n")
		output.WriteString("# TYPE fd_listings_total counter\n")
		output.WriteString(fmt.Sprintf("fd_listings_total %d\n\n", snapshot.ListingsTotal))

		output.WriteString("# HELP fd_listings_swallowed_total Listing enumeration errors converted to empty results\n")
		output.WriteString("# TYPE fd_listings_swallowed_total counter\n")
		output.WriteString(fmt.Sprintf("fd_listings_swallowed_total %d\n\n", snapshot.ListingsSwallowedTotal))

		output.WriteString("# HELP fd_uptime_seconds Application uptime in seconds\n")
		output.WriteString("# TYPE fd_uptime_seconds counter\n")
		output.WriteString(fmt.Sprintf("fd_uptime_seconds %.0f\n", time.Since(serverStartTime).Seconds()))

		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(output.String()))
	})
}
