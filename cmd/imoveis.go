/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/imobi/client/internal/services"
	"github.com/imobi/client/types"
)

// imoveisCmd groups the listing commands.
var imoveisCmd = &cobra.Command{
	Use:     "imoveis",
	Aliases: []string{"listings"},
	Short:   "Manage listings",
}

var (
	listFinalidade string
	outputJSON     bool
)

var imoveisListCmd = &cobra.Command{
	Use:   "list",
	Short: "List listings, optionally filtered by purpose",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		listings := services.NewListingService(e.client, e.sessions)
		items, err := listings.List(cmd.Context(), listFinalidade)
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), items)
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTITULO\tFINALIDADE\tSTATUS\tPRECO")
		for _, item := range items {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
				item.ID, item.Titulo, services.DisplayPurpose(item.Finalidade), item.Status, services.DisplayPrice(item))
		}
		return tw.Flush()
	}),
}

var imoveisGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one listing",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		listings := services.NewListingService(e.client, e.sessions)
		item, err := listings.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if outputJSON {
			return printJSON(cmd.OutOrStdout(), item)
		}
		printListing(cmd.OutOrStdout(), item, e.cfg.WhatsAppNumber)
		return nil
	}),
}

var createForm services.ListingForm

var imoveisCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a listing (requires login)",
	Long: `Creates a listing from flags. Decimal values accept a comma as the
decimal separator.

	imobi imoveis create --titulo "Casa no Centro" --finalidade VENDA \
		--preco-venda 450000,00 --bairro 1 --tipo 1
`,
	Args: cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		listings := services.NewListingService(e.client, e.sessions)
		created, err := listings.Create(cmd.Context(), createForm)
		if err != nil {
			if services.IsNotAuthenticated(err) {
				return errNotLoggedIn
			}
			return err
		}
		if created == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "listing created")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "listing %d created\n", created.ID)
		return nil
	}),
}

var imoveisDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a listing (requires login)",
	Args:  cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, args []string, e *env) error {
		listings := services.NewListingService(e.client, e.sessions)
		if err := listings.Delete(cmd.Context(), args[0]); err != nil {
			if services.IsNotAuthenticated(err) {
				return errNotLoggedIn
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "listing %s deleted\n", args[0])
		return nil
	}),
}

func printListing(w io.Writer, item types.Imovel, whatsApp string) {
	fmt.Fprintf(w, "%s (#%d)\n", item.Titulo, item.ID)
	fmt.Fprintf(w, "  %s, %s\n", services.DisplayPurpose(item.Finalidade), services.DisplayPrice(item))
	if address := services.DisplayAddress(item); address != "" {
		fmt.Fprintf(w, "  %s\n", address)
	}
	if item.TipoImovel != nil {
		fmt.Fprintf(w, "  tipo: %s\n", item.TipoImovel.Nome)
	}
	fmt.Fprintf(w, "  dormitórios %d, banheiros %d, vagas %d\n", item.Dormitorios, item.Banheiros, item.Garagem)
	if item.Descricao != "" {
		fmt.Fprintf(w, "  %s\n", item.Descricao)
	}
	fmt.Fprintf(w, "  contato: %s\n", services.WhatsAppLink(whatsApp, item))
}

func printJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func init() {
	rootCmd.AddCommand(imoveisCmd)
	imoveisCmd.AddCommand(imoveisListCmd, imoveisGetCmd, imoveisCreateCmd, imoveisDeleteCmd)

	imoveisCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "print JSON instead of text")
	imoveisListCmd.Flags().StringVar(&listFinalidade, "finalidade", "", "VENDA or ALUGUEL")

	f := imoveisCreateCmd.Flags()
	f.StringVar(&createForm.Titulo, "titulo", "", "title")
	f.StringVar(&createForm.Descricao, "descricao", "", "description")
	f.StringVar(&createForm.Finalidade, "finalidade", string(types.FinalidadeVenda), "VENDA or ALUGUEL")
	f.StringVar(&createForm.Status, "status", types.StatusAtivo, "publication status")
	f.BoolVar(&createForm.Destaque, "destaque", false, "highlight the listing")
	f.StringVar(&createForm.PrecoVenda, "preco-venda", "", "sale price")
	f.StringVar(&createForm.PrecoAluguel, "preco-aluguel", "", "monthly rent")
	f.StringVar(&createForm.Endereco, "endereco", "", "street")
	f.StringVar(&createForm.Numero, "numero", "", "street number")
	f.StringVar(&createForm.CEP, "cep", "", "postal code")
	f.StringVar(&createForm.Complemento, "complemento", "", "address complement")
	f.StringVar(&createForm.Dormitorios, "dormitorios", "", "bedrooms")
	f.StringVar(&createForm.Banheiros, "banheiros", "", "bathrooms")
	f.StringVar(&createForm.Garagem, "garagem", "", "parking spaces")
	f.StringVar(&createForm.AreaConstruida, "area-construida", "", "built area in m²")
	f.StringVar(&createForm.AreaTotal, "area-total", "", "total area in m²")
	f.StringVar(&createForm.BairroID, "bairro", "", "neighborhood id (see imobi bairros)")
	f.StringVar(&createForm.TipoImovelID, "tipo", "", "property type id (see imobi tipos)")
}
