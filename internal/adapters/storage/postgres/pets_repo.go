package postgres

import (
	"context"
	"database/sql"
	"errors"

	"registro-pet/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, usuario_id, nome, data_nascimento, data_chegada,
	especie, porte, peso, raca, cor_pelagem,
	idade_aproximada, outras_caracteristicas, criado_em
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO pet (
			usuario_id, nome, data_nascimento, data_chegada,
			especie, porte, peso, raca, cor_pelagem,
			idade_aproximada, outras_caracteristicas, criado_em
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`,
		p.UsuarioID,
		p.Nome,
		toNullDate(p.DataNascimento),
		toNullDate(p.DataChegada),
		p.Especie,
		p.Porte,
		p.Peso,
		p.Raca,
		p.CorPelagem,
		toNullString(p.IdadeAproximada),
		toNullString(p.OutrasCaracteristicas),
		p.CriadoEm,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err, "pet_usuario_nome_key") {
			return pets.Pet{}, pets.ErrNameTaken
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet
		SET
			data_chegada = $2,
			especie = $3,
			porte = $4,
			peso = $5,
			raca = $6,
			cor_pelagem = $7,
			idade_aproximada = $8,
			outras_caracteristicas = $9
		WHERE id = $1
	`,
		p.ID,
		toNullDate(p.DataChegada),
		p.Especie,
		p.Porte,
		p.Peso,
		p.Raca,
		p.CorPelagem,
		toNullString(p.IdadeAproximada),
		toNullString(p.OutrasCaracteristicas),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pet WHERE id = $1`, id)
	return scanPet(row)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pet
		WHERE usuario_id = $1
		ORDER BY lower(nome) ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PetsRepo) NameExists(ctx context.Context, ownerID int64, nome string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pet WHERE usuario_id = $1 AND lower(nome) = lower($2)
		)
	`, ownerID, nome).Scan(&exists)
	return exists, err
}

func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	// vacinas caem pelo ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var nasc, cheg sql.NullTime
	var idade, outras sql.NullString

	err := row.Scan(
		&p.ID,
		&p.UsuarioID,
		&p.Nome,
		&nasc,
		&cheg,
		&p.Especie,
		&p.Porte,
		&p.Peso,
		&p.Raca,
		&p.CorPelagem,
		&idade,
		&outras,
		&p.CriadoEm,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	p.DataNascimento = fromNullDate(nasc)
	p.DataChegada = fromNullDate(cheg)
	p.IdadeAproximada = fromNullString(idade)
	p.OutrasCaracteristicas = fromNullString(outras)
	return p, nil
}
