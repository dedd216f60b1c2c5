// Package memory guarda tudo em mapas protegidos por mutex. Usado em dev e
// nos testes; replica as garantias do postgres que o domínio depende:
// constraints de unicidade e delete em cascata usuário → pet → vacina.
package memory

import (
	"sort"
	"sync"

	"registro-pet/internal/domain/owners"
	"registro-pet/internal/domain/pets"
	"registro-pet/internal/domain/vaccinations"
)

// Store compartilha o estado entre os três repositórios para a cascata
// atravessar as entidades sob o mesmo lock.
type Store struct {
	mu sync.RWMutex

	owners       map[int64]owners.Owner
	pets         map[int64]pets.Pet
	vaccinations map[int64]vaccinations.Vaccination

	nextOwnerID int64
	nextPetID   int64
	nextVacID   int64
}

func NewStore() *Store {
	return &Store{
		owners:       make(map[int64]owners.Owner),
		pets:         make(map[int64]pets.Pet),
		vaccinations: make(map[int64]vaccinations.Vaccination),
	}
}

func (s *Store) Owners() owners.Repository             { return &ownersRepo{s} }
func (s *Store) Pets() pets.Repository                 { return &petsRepo{s} }
func (s *Store) Vaccinations() vaccinations.Repository { return &vaccinationsRepo{s} }

func sortByID[T any](items []T, id func(T) int64) {
	sort.Slice(items, func(i, j int) bool { return id(items[i]) < id(items[j]) })
}

// deletePetLocked remove um pet e suas vacinas. Chamar com s.mu em escrita.
func (s *Store) deletePetLocked(petID int64) {
	for id, v := range s.vaccinations {
		if v.PetID == petID {
			delete(s.vaccinations, id)
		}
	}
	delete(s.pets, petID)
}
