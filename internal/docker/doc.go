// Package docker holds everything the launcher knows about the host's
// container engine.
//
// This package handles:
//   - Classification of the engine endpoint override (DOCKER_HOST) into a
//     model.HostEndpoint, decided purely from the variable's value
//   - The docker client configuration check that warns about an external
//     credential store (credsStore), parsed with JSONC tolerance
//   - The execution driver that pulls the toolchain image and runs the
//     assembled command through "sh -c", with the Idle -> Pulling ->
//     Running -> Succeeded/Failed state machine
//
// Endpoint URLs are validated with the Docker SDK's client.ParseHostURL so
// the launcher accepts exactly what the engine CLI inside the container will.
package docker
