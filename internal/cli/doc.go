// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It maps
// cobra commands and viper-bound flags onto app.Config and the App run
// methods.
package cli
