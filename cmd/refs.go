/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var bairrosCmd = &cobra.Command{
	Use:   "bairros",
	Short: "List neighborhoods",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		bairros, err := e.client.ListBairros(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOME\tCIDADE\tUF")
		for _, b := range bairros {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", b.ID, b.Nome, b.Cidade, b.Estado)
		}
		return tw.Flush()
	}),
}

var tiposCmd = &cobra.Command{
	Use:   "tipos",
	Short: "List property types",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		tipos, err := e.client.ListTiposImoveis(cmd.Context())
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNOME\tDESCRICAO")
		for _, t := range tipos {
			fmt.Fprintf(tw, "%d\t%s\t%s\n", t.ID, t.Nome, t.Descricao)
		}
		return tw.Flush()
	}),
}

func init() {
	rootCmd.AddCommand(bairrosCmd, tiposCmd)
}
