// Package data ships the reference study configuration with the binary.
package data

import _ "embed"

// ExampleStudy is a commented YAML study file reproducing the default study.
//
//go:embed study.yaml
var ExampleStudy []byte
