// Package http contains the chi HTTP transport for tabpulse: the analyses
// resource (upload, report retrieval, cleaned-data download), health, and
// prometheus metrics. Handlers translate between HTTP and the service
// layer and never touch the dataprocessing engine directly.
package http
