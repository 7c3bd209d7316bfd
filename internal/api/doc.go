// Package api implements the JSON HTTP API and serves the resume site:
// the embedded static page, the resume document endpoint, the
// question-answering endpoint, and health probes.
package api
