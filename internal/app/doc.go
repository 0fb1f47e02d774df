// Package app contains the core application logic. It loads the
// configuration model, runs alignments and digestion assignments over it, and
// renders the results, decoupled from any specific entrypoint like a CLI.
package app
