// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"github.com/spf13/cobra"
	"pwd-audit/internal/api"
	"pwd-audit/internal/util"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the password audit API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveCommand()
		},
	}
)

func init() {
	serveCmd.Flags().BoolVar(&selfTLS, "self-tls", false,
		"If the server should use a self-signed certificate when starting. The certificate is renewed on each server restart")
	serveCmd.Flags().StringVar(&tlsCert, "tls-cert", "", "Path to the PEM encoded TLS certificate to be used by the server")
	serveCmd.Flags().StringVar(&tlsKey, "tls-key", "", "Path to the PEM encoded TLS private key to be used by the server")
	serveCmd.Flags().Uint16VarP(&port, "port", "p", 3100, "Port to be used by the server")

	rootCmd.AddCommand(serveCmd)
}

func serveCommand() error {
	util.ApplyCliSettings(verbose, profile, pprofPort)

	return api.RunServer(api.Config{
		Port:    fmt.Sprintf("%d", port),
		HibpURL: apiURL,
		SelfTLS: selfTLS,
		TLSCert: tlsCert,
		TLSKey:  tlsKey,
		Debug:   verbose,
	})
}
