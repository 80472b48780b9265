// Package main hosts the papercard CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the whole workflow: inspecting bucket
// status, running the extraction pipeline over a selection of buckets,
// recomputing scores under alternate scenarios, assigning file-name numbers,
// and configuration scaffolding. It centralizes configuration resolution and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
