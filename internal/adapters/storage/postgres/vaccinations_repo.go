package postgres

import (
	"context"
	"database/sql"
	"errors"

	"registro-pet/internal/domain/vaccinations"
)

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

const vaccinationColumns = `
	id, pet_id, nome, fabricante,
	data_aplicacao, data_fabricacao, data_vencimento, data_revac,
	lote, dose_tamanho, observacoes
`

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) (vaccinations.Vaccination, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO vacina (
			pet_id, nome, fabricante,
			data_aplicacao, data_fabricacao, data_vencimento, data_revac,
			lote, dose_tamanho, observacoes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id
	`,
		v.PetID,
		v.Nome,
		v.Fabricante,
		v.Aplicacao,
		v.Fabricacao,
		v.Vencimento,
		v.Revacinacao,
		v.Lote,
		v.DoseTamanho,
		toNullString(v.Observacoes),
	).Scan(&v.ID)
	if err != nil {
		return vaccinations.Vaccination{}, err
	}
	return v, nil
}

func (r *VaccinationsRepo) Update(ctx context.Context, v vaccinations.Vaccination) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE vacina
		SET
			fabricante = $2,
			data_fabricacao = $3,
			data_vencimento = $4,
			data_revac = $5,
			lote = $6,
			dose_tamanho = $7,
			observacoes = $8
		WHERE id = $1
	`,
		v.ID,
		v.Fabricante,
		v.Fabricacao,
		v.Vencimento,
		v.Revacinacao,
		v.Lote,
		v.DoseTamanho,
		toNullString(v.Observacoes),
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id int64) (vaccinations.Vaccination, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+vaccinationColumns+` FROM vacina WHERE id = $1`, id)
	return scanVaccination(row)
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, petID int64) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vacina
		WHERE pet_id = $1
		ORDER BY data_aplicacao DESC
	`, petID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VaccinationsRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vacina WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

func scanVaccination(row rowScanner) (vaccinations.Vaccination, error) {
	var v vaccinations.Vaccination
	var obs sql.NullString

	err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.Nome,
		&v.Fabricante,
		&v.Aplicacao,
		&v.Fabricacao,
		&v.Vencimento,
		&v.Revacinacao,
		&v.Lote,
		&v.DoseTamanho,
		&obs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, err
	}

	v.Observacoes = fromNullString(obs)
	return v, nil
}
