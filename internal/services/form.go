package services

import (
	"strconv"
	"strings"

	"github.com/imobi/client/types"
)

// ListingForm is the raw listing form as typed by the user.
type ListingForm struct {
	Titulo         string
	Descricao      string
	Finalidade     string
	Status         string
	Destaque       bool
	PrecoVenda     string
	PrecoAluguel   string
	Endereco       string
	Numero         string
	CEP            string
	Complemento    string
	Dormitorios    string
	Banheiros      string
	Garagem        string
	AreaConstruida string
	AreaTotal      string
	BairroID       string
	TipoImovelID   string
}

// FormFromImovel fills a form with an existing listing, for editing.
func FormFromImovel(imovel types.Imovel) ListingForm {
	form := ListingForm{
		Titulo:         imovel.Titulo,
		Descricao:      imovel.Descricao,
		Finalidade:     string(imovel.Finalidade),
		Status:         imovel.Status,
		Destaque:       imovel.Destaque,
		PrecoVenda:     formatOptional(imovel.PrecoVenda),
		PrecoAluguel:   formatOptional(imovel.PrecoAluguel),
		Endereco:       imovel.Endereco,
		Numero:         imovel.Numero,
		CEP:            imovel.CEP,
		Complemento:    imovel.Complemento,
		AreaConstruida: formatOptional(imovel.AreaConstruida),
		AreaTotal:      formatOptional(imovel.AreaTotal),
	}
	if imovel.Dormitorios != 0 {
		form.Dormitorios = strconv.Itoa(imovel.Dormitorios)
	}
	if imovel.Banheiros != 0 {
		form.Banheiros = strconv.Itoa(imovel.Banheiros)
	}
	if imovel.Garagem != 0 {
		form.Garagem = strconv.Itoa(imovel.Garagem)
	}
	bairroID := imovel.BairroID
	if bairroID == 0 && imovel.Bairro != nil {
		bairroID = imovel.Bairro.ID
	}
	if bairroID != 0 {
		form.BairroID = strconv.Itoa(bairroID)
	}
	tipoID := imovel.TipoImovelID
	if tipoID == 0 && imovel.TipoImovel != nil {
		tipoID = imovel.TipoImovel.ID
	}
	if tipoID != 0 {
		form.TipoImovelID = strconv.Itoa(tipoID)
	}
	return form
}

// ParseListingForm converts the form into a listing payload.
//
// Counts left blank are zero; prices and areas left blank are absent.
// A comma is accepted as decimal separator ("350000,50").
func ParseListingForm(form ListingForm) (types.Imovel, error) {
	imovel := types.Imovel{
		Titulo:      strings.TrimSpace(form.Titulo),
		Descricao:   strings.TrimSpace(form.Descricao),
		Status:      strings.ToUpper(strings.TrimSpace(form.Status)),
		Destaque:    form.Destaque,
		Endereco:    strings.TrimSpace(form.Endereco),
		Numero:      strings.TrimSpace(form.Numero),
		CEP:         strings.TrimSpace(form.CEP),
		Complemento: strings.TrimSpace(form.Complemento),
	}
	if imovel.Titulo == "" {
		return types.Imovel{}, required("titulo")
	}

	imovel.Finalidade = types.FinalidadeVenda
	if raw := strings.ToUpper(strings.TrimSpace(form.Finalidade)); raw != "" {
		imovel.Finalidade = types.Finalidade(raw)
		if !imovel.Finalidade.Valid() {
			return types.Imovel{}, &FieldError{Field: "finalidade", Reason: "must be VENDA or ALUGUEL"}
		}
	}
	if imovel.Status == "" {
		imovel.Status = types.StatusAtivo
	}

	var err error
	if imovel.Dormitorios, err = parseCount("dormitorios", form.Dormitorios); err != nil {
		return types.Imovel{}, err
	}
	if imovel.Banheiros, err = parseCount("banheiros", form.Banheiros); err != nil {
		return types.Imovel{}, err
	}
	if imovel.Garagem, err = parseCount("garagem", form.Garagem); err != nil {
		return types.Imovel{}, err
	}

	if imovel.PrecoVenda, err = parseDecimal("precoVenda", form.PrecoVenda); err != nil {
		return types.Imovel{}, err
	}
	if imovel.PrecoAluguel, err = parseDecimal("precoAluguel", form.PrecoAluguel); err != nil {
		return types.Imovel{}, err
	}
	if imovel.AreaConstruida, err = parseDecimal("areaConstruida", form.AreaConstruida); err != nil {
		return types.Imovel{}, err
	}
	if imovel.AreaTotal, err = parseDecimal("areaTotal", form.AreaTotal); err != nil {
		return types.Imovel{}, err
	}

	if imovel.BairroID, err = parseReference("bairroId", form.BairroID); err != nil {
		return types.Imovel{}, err
	}
	if imovel.TipoImovelID, err = parseReference("tipoImovelId", form.TipoImovelID); err != nil {
		return types.Imovel{}, err
	}

	return imovel, nil
}

func parseCount(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, &FieldError{Field: field, Reason: "must be a whole number"}
	}
	return value, nil
}

func parseDecimal(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || value < 0 {
		return nil, &FieldError{Field: field, Reason: "must be a number"}
	}
	return &value, nil
}

func parseReference(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, required(field)
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, &FieldError{Field: field, Reason: "must reference an existing entry"}
	}
	return value, nil
}

func formatOptional(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
