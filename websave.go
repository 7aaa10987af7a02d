// Package websave provides a CLI tool for saving web pages as PDF or
// Markdown files, either from a single URL or in bulk from the results
// of a Brave search query.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., rod/,
// brave/, htmltomarkdown/).
package websave
