// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the execution lifecycle (a single manifest
// build, or a build followed by watch mode), decoupled from any specific
// entrypoint like a CLI.
package app
