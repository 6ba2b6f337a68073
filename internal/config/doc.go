// Package config resolves every configurable value of the launcher.
//
// All settings go through one three-tier Resolver, parameterized by key:
//
//	CLI flag  >  environment variable  >  settings file  >  built-in default
//
// The settings file ($HOME/.scone/sconectl.yaml) is optional and parsed with
// gopkg.in/yaml.v3. When it is absent the precedence is exactly flag > env >
// default.
//
// The package also implements the CAS-config resolution: extracting the
// --cas-config flag from the argument vector, validating the directory and
// provisioning it on disk. Resolution is pure; only ProvisionCAS touches the
// filesystem, so a relative path is always rejected before any mutation.
package config
