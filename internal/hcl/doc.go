// Package hcl provides the HCL implementation of config.Loader. It is
// responsible for all file parsing, block-to-model translation, attribute
// evaluation and CTY-to-Go data binding.
package hcl
