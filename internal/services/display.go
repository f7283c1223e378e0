package services

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/imobi/client/types"
)

const priceOnRequest = "Consulte"

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// DisplayPrice formats the price that matches the listing's purpose,
// falling back to the other price and then to "Consulte".
func DisplayPrice(imovel types.Imovel) string {
	var candidates []*float64
	if imovel.Finalidade == types.FinalidadeAluguel {
		candidates = []*float64{imovel.PrecoAluguel, imovel.PrecoVenda, imovel.Preco}
	} else {
		candidates = []*float64{imovel.PrecoVenda, imovel.PrecoAluguel, imovel.Preco}
	}
	for _, price := range candidates {
		if price != nil && *price > 0 {
			return FormatBRL(*price)
		}
	}
	return priceOnRequest
}

// FormatBRL formats value as Brazilian reais.
func FormatBRL(value float64) string {
	return "R$ " + ptBR.Sprint(number.Decimal(value, number.Scale(2)))
}

// DisplayPurpose returns the human label of a purpose.
func DisplayPurpose(finalidade types.Finalidade) string {
	if finalidade == types.FinalidadeAluguel {
		return "Aluguel"
	}
	return "Venda"
}

// DisplayAddress joins the address parts that are present.
func DisplayAddress(imovel types.Imovel) string {
	var parts []string
	if street := strings.TrimSpace(imovel.Endereco); street != "" {
		if imovel.Numero != "" {
			street += ", " + imovel.Numero
		}
		parts = append(parts, street)
	}
	if imovel.Bairro != nil {
		if imovel.Bairro.Nome != "" {
			parts = append(parts, imovel.Bairro.Nome)
		}
		if imovel.Bairro.Cidade != "" && imovel.Bairro.Estado != "" {
			parts = append(parts, imovel.Bairro.Cidade+"/"+imovel.Bairro.Estado)
		}
	} else if imovel.Cidade != "" {
		parts = append(parts, imovel.Cidade)
	}
	if imovel.CEP != "" {
		parts = append(parts, imovel.CEP)
	}
	return strings.Join(parts, " - ")
}

// WhatsAppLink builds the contact link for a listing.
func WhatsAppLink(phone string, imovel types.Imovel) string {
	text := fmt.Sprintf("Olá! Tenho interesse no imóvel %q (código %d).", imovel.Titulo, imovel.ID)
	return "https://wa.me/" + url.PathEscape(phone) + "?text=" + url.QueryEscape(text)
}
