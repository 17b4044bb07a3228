// Package hcl provides the HCL authoring format for recipes: a
// config.Loader that parses .hcl scripts into descriptors and a
// config.Writer that renders descriptors back to HCL.
//
// Every top-level statement is a `block` with the source as its label.
// Inside it, attributes are literal fields and nested blocks are fields
// holding another block, labelled with that block's source:
//
//	block "builtin:log" {
//	  what "builtin:add" {
//	    a = 1
//	    b = 2
//	  }
//	}
//
// Numbers written with a decimal point or exponent are floats; all other
// numbers are 32-bit integers. null is Void.
package hcl
