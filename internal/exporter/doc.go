// Package exporter persists analysis results to disk. It is a presentation
// collaborator: it only reads the AnalysisReport and the cleaned Dataset and
// never constructs or mutates them.
package exporter
