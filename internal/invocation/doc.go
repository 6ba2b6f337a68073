// Package invocation assembles the single "docker run" command line that
// performs the real work.
//
// The command is held as an ordered list of typed flag records and is
// serialized to a string only at the very end, with one quoting function
// (mvdan.cc/sh/v3/syntax.Quote, POSIX dialect) applied to every token. The
// flag order is fixed:
//
//  1. run options (--rm, -i, -t)
//  2. engine endpoint (DOCKER_HOST export, socket mount)
//  3. CAS config mount
//  4. kubeconfig mount
//  5. environment exports for repository and host path context
//  6. standard host-state mounts (~/.docker, ~/.scone)
//  7. working-directory binding
//  8. image reference
//  9. pass-through arguments
//
// The order has no meaning to the tool but is kept stable so assembled
// commands can be compared in tests and reproduced while debugging.
package invocation
