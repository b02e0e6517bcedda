// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the commands that load a graph and turn its
// user stories into feature files, decoupled from any specific entrypoint
// like a CLI.
package app
