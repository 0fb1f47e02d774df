// Package config defines the format-agnostic configuration model for the
// application and the Loader interface that fills it.
//
// The model only carries plain values. Turning them into overhang paths,
// syntax graphs and enzymes is left to the `app` package; concrete loaders,
// such as the HCL one, live in separate packages.
package config
