package devapi

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/imobi/client/types"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique field is already taken.
	ErrConflict = errors.New("already exists")
)

type userRecord struct {
	types.User
	PasswordHash string
}

// Store keeps every resource of the development API in memory.
type Store struct {
	mu      sync.RWMutex
	nextID  int
	users   map[int]userRecord
	byEmail map[string]int
	imoveis map[int]types.Imovel
	bairros []types.Bairro
	tipos   []types.TipoImovel
}

// NewStore constructs a Store seeded with reference data.
func NewStore() *Store {
	return &Store{
		nextID:  1,
		users:   make(map[int]userRecord),
		byEmail: make(map[string]int),
		imoveis: make(map[int]types.Imovel),
		bairros: []types.Bairro{
			{ID: 1, Nome: "Centro", Cidade: "Porto Alegre", Estado: "RS"},
			{ID: 2, Nome: "Moinhos de Vento", Cidade: "Porto Alegre", Estado: "RS"},
			{ID: 3, Nome: "Cidade Baixa", Cidade: "Porto Alegre", Estado: "RS"},
		},
		tipos: []types.TipoImovel{
			{ID: 1, Nome: "Casa"},
			{ID: 2, Nome: "Apartamento"},
			{ID: 3, Nome: "Sala comercial", Descricao: "Imóvel para uso comercial"},
		},
	}
}

func (s *Store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Store) CreateUser(user types.User, passwordHash string) (types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return types.User{}, ErrConflict
	}
	user.ID = s.id()
	s.users[user.ID] = userRecord{User: user, PasswordHash: passwordHash}
	s.byEmail[key] = user.ID
	return user, nil
}

func (s *Store) userByEmail(email string) (userRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return userRecord{}, ErrNotFound
	}
	return s.users[id], nil
}

func (s *Store) UserByEmail(email string) (types.User, error) {
	record, err := s.userByEmail(email)
	if err != nil {
		return types.User{}, err
	}
	return record.User, nil
}

func (s *Store) ListUsers() []types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]types.User, 0, len(s.users))
	for _, record := range s.users {
		users = append(users, record.User)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

func (s *Store) ListImoveis(finalidade types.Finalidade) []types.Imovel {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]types.Imovel, 0, len(s.imoveis))
	for _, imovel := range s.imoveis {
		if finalidade != "" && imovel.Finalidade != finalidade {
			continue
		}
		items = append(items, s.expand(imovel))
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (s *Store) GetImovel(id int) (types.Imovel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	imovel, ok := s.imoveis[id]
	if !ok {
		return types.Imovel{}, ErrNotFound
	}
	return s.expand(imovel), nil
}

func (s *Store) CreateImovel(imovel types.Imovel) (types.Imovel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReferences(imovel); err != nil {
		return types.Imovel{}, err
	}
	imovel.ID = s.id()
	imovel.Bairro, imovel.TipoImovel = nil, nil
	s.imoveis[imovel.ID] = imovel
	return s.expand(imovel), nil
}

func (s *Store) UpdateImovel(id int, imovel types.Imovel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.imoveis[id]
	if !ok {
		return ErrNotFound
	}
	if err := s.checkReferences(imovel); err != nil {
		return err
	}
	imovel.ID = id
	imovel.Bairro, imovel.TipoImovel = nil, nil
	if imovel.Fotos == nil {
		imovel.Fotos = existing.Fotos
	}
	s.imoveis[id] = imovel
	return nil
}

func (s *Store) DeleteImovel(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.imoveis[id]; !ok {
		return ErrNotFound
	}
	delete(s.imoveis, id)
	return nil
}

func (s *Store) Bairros() []types.Bairro {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Bairro(nil), s.bairros...)
}

func (s *Store) TiposImoveis() []types.TipoImovel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.TipoImovel(nil), s.tipos...)
}

// errUnknownReference is returned when a listing points to a
// neighborhood or property type that does not exist.
var errUnknownReference = errors.New("unknown bairroId or tipoImovelId")

func (s *Store) checkReferences(imovel types.Imovel) error {
	if s.bairro(imovel.BairroID) == nil || s.tipo(imovel.TipoImovelID) == nil {
		return errUnknownReference
	}
	return nil
}

func (s *Store) expand(imovel types.Imovel) types.Imovel {
	imovel.Bairro = s.bairro(imovel.BairroID)
	imovel.TipoImovel = s.tipo(imovel.TipoImovelID)
	if imovel.Bairro != nil && imovel.Cidade == "" {
		imovel.Cidade = imovel.Bairro.Cidade
	}
	return imovel
}

func (s *Store) bairro(id int) *types.Bairro {
	for i := range s.bairros {
		if s.bairros[i].ID == id {
			b := s.bairros[i]
			return &b
		}
	}
	return nil
}

func (s *Store) tipo(id int) *types.TipoImovel {
	for i := range s.tipos {
		if s.tipos[i].ID == id {
			t := s.tipos[i]
			return &t
		}
	}
	return nil
}
