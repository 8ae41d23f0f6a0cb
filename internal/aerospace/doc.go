// Package aerospace drives the AeroSpace tiling window manager through its
// command-line interface. Every call runs one `aerospace` process to
// completion; listing commands use `--json` output.
package aerospace
