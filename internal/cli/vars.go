// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// root
	apiURL string
	// check
	interactive bool
	// batch
	inputFile string
	// batch
	outFile string
	// batch
	threads int
	// batch
	skipBreach bool
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
)
