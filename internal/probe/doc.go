// Package probe inspects the host before anything is assembled.
//
// It reads environment variables and filesystem state only: it never talks
// to the container engine. Failures that mean the host is not provisioned
// (no shell, no engine CLI, no HOME, a state directory that cannot be
// created) are fatal. Everything else (an unrecognized endpoint, a
// credential store, a missing kubeconfig) is logged as a warning and the run
// continues.
package probe
