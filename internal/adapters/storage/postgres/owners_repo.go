package postgres

import (
	"context"
	"database/sql"
	"errors"

	"registro-pet/internal/domain/owners"
)

type OwnersRepo struct {
	db *sql.DB
}

func NewOwnersRepo(db *sql.DB) *OwnersRepo {
	return &OwnersRepo{db: db}
}

const ownerColumns = `
	id, nome, data, rua, bairro, numero, cep, cidade, estado,
	complemento, funcao, email, senha
`

func (r *OwnersRepo) Create(ctx context.Context, o owners.Owner) (owners.Owner, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO usuario (
			nome, data, rua, bairro, numero, cep, cidade, estado,
			complemento, funcao, email, senha
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id
	`,
		o.Nome,
		o.Data,
		o.Rua,
		o.Bairro,
		o.Numero,
		o.Cep,
		o.Cidade,
		o.Estado,
		o.Complemento,
		string(o.Funcao),
		o.Email,
		o.SenhaHash,
	).Scan(&o.ID)
	if err != nil {
		if isUniqueViolation(err, "usuario_email_key") {
			return owners.Owner{}, owners.ErrEmailTaken
		}
		return owners.Owner{}, err
	}
	return o, nil
}

func (r *OwnersRepo) Update(ctx context.Context, o owners.Owner) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE usuario
		SET
			nome = $2,
			data = $3,
			rua = $4,
			bairro = $5,
			numero = $6,
			cep = $7,
			cidade = $8,
			estado = $9,
			complemento = $10,
			funcao = $11,
			senha = $12
		WHERE id = $1
	`,
		o.ID,
		o.Nome,
		o.Data,
		o.Rua,
		o.Bairro,
		o.Numero,
		o.Cep,
		o.Cidade,
		o.Estado,
		o.Complemento,
		string(o.Funcao),
		o.SenhaHash,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

func (r *OwnersRepo) GetByID(ctx context.Context, id int64) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM usuario WHERE id = $1`, id)
	return scanOwner(row)
}

func (r *OwnersRepo) GetByEmail(ctx context.Context, email string) (owners.Owner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+ownerColumns+` FROM usuario WHERE email = $1`, email)
	return scanOwner(row)
}

func (r *OwnersRepo) List(ctx context.Context) ([]owners.Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+ownerColumns+` FROM usuario ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]owners.Owner, 0)
	for rows.Next() {
		o, err := scanOwner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OwnersRepo) Delete(ctx context.Context, id int64) error {
	// pets e vacinas caem pelo ON DELETE CASCADE
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuario WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return owners.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOwner(row rowScanner) (owners.Owner, error) {
	var o owners.Owner
	var complemento sql.NullString
	var funcao string

	err := row.Scan(
		&o.ID,
		&o.Nome,
		&o.Data,
		&o.Rua,
		&o.Bairro,
		&o.Numero,
		&o.Cep,
		&o.Cidade,
		&o.Estado,
		&complemento,
		&funcao,
		&o.Email,
		&o.SenhaHash,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return owners.Owner{}, owners.ErrNotFound
		}
		return owners.Owner{}, err
	}

	if complemento.Valid {
		o.Complemento = complemento.String
	}
	o.Funcao = owners.Funcao(funcao)
	return o, nil
}
