// Package args partitions the launcher's argument vector into the tokens the
// launcher consumes itself and the tokens forwarded to the containerized
// tool.
package args
