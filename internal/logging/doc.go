// Package logging builds slog loggers for the papercard CLI.
//
// Two formats are supported: a compact console rendering
// ("TIME LEVEL component: msg key=value") and standard JSON. Output fans
// out to stdout and a papercard.log file under the configured log
// directory. The pipeline's per-document error log is not handled here;
// its line format is owned by the extract package.
package logging
