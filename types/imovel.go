package types

// Finalidade is the purpose of a listing.
type Finalidade string

// Listing purposes as sent on the wire.
const (
	FinalidadeVenda   Finalidade = "VENDA"
	FinalidadeAluguel Finalidade = "ALUGUEL"
)

// Valid reports whether f is one of the known purposes.
func (f Finalidade) Valid() bool {
	return f == FinalidadeVenda || f == FinalidadeAluguel
}

// Listing statuses known to the platform. The API may send others.
const (
	StatusAtivo   = "ATIVO"
	StatusInativo = "INATIVO"
	StatusAlugado = "ALUGADO"
	StatusVendido = "VENDIDO"
)

// Imovel represents a property listing, for sale or for rent.
// Optional numeric attributes are pointers so that an absent value
// is distinguishable from zero.
type Imovel struct {
	// ID is the unique identifier of the listing.
	ID int `json:"id,omitempty"`

	// Titulo is the headline shown in lists and on the detail page.
	Titulo string `json:"titulo"`

	// Finalidade tells whether the listing is for sale or rent.
	Finalidade Finalidade `json:"finalidade"`

	// Status is the publication state (e.g., "ATIVO", "VENDIDO").
	Status string `json:"status,omitempty"`

	Descricao string `json:"descricao,omitempty"`
	Destaque  bool   `json:"destaque,omitempty"`

	// Preco is a generic price some listing endpoints return instead
	// of the purpose-specific ones.
	Preco        *float64 `json:"preco,omitempty"`
	PrecoVenda   *float64 `json:"precoVenda,omitempty"`
	PrecoAluguel *float64 `json:"precoAluguel,omitempty"`

	Endereco    string `json:"endereco,omitempty"`
	Numero      string `json:"numero,omitempty"`
	CEP         string `json:"cep,omitempty"`
	Complemento string `json:"complemento,omitempty"`
	Cidade      string `json:"cidade,omitempty"`

	Dormitorios int `json:"dormitorios,omitempty"`
	Banheiros   int `json:"banheiros,omitempty"`
	Garagem     int `json:"garagem,omitempty"`

	// AreaConstruida and AreaTotal are expressed in square meters.
	AreaConstruida *float64 `json:"areaConstruida,omitempty"`
	AreaTotal      *float64 `json:"areaTotal,omitempty"`

	// BairroID and TipoImovelID reference the neighborhood and the
	// property type. They are what the API expects on writes.
	BairroID     int `json:"bairroId,omitempty"`
	TipoImovelID int `json:"tipoImovelId,omitempty"`

	// Bairro and TipoImovel are expanded references returned on reads.
	Bairro     *Bairro     `json:"bairro,omitempty"`
	TipoImovel *TipoImovel `json:"tipoImovel,omitempty"`

	// Fotos is the photo gallery. At most one photo is the cover.
	Fotos []Foto `json:"fotos,omitempty"`
}

// Foto is a listing photo.
type Foto struct {
	ID          int    `json:"id"`
	Caminho     string `json:"caminho"`
	NomeArquivo string `json:"nomeArquivo,omitempty"`
	Capa        bool   `json:"capa,omitempty"`
}

// Cover returns the cover photo, falling back to the first photo.
func (i Imovel) Cover() (Foto, bool) {
	if len(i.Fotos) == 0 {
		return Foto{}, false
	}
	for _, foto := range i.Fotos {
		if foto.Capa {
			return foto, true
		}
	}
	return i.Fotos[0], true
}

// Bairro is a neighborhood reference entity.
type Bairro struct {
	ID     int    `json:"id"`
	Nome   string `json:"nome"`
	Cidade string `json:"cidade,omitempty"`
	Estado string `json:"estado,omitempty"`
}

// TipoImovel is a property type reference entity (house, apartment...).
type TipoImovel struct {
	ID        int    `json:"id"`
	Nome      string `json:"nome"`
	Descricao string `json:"descricao,omitempty"`
}
