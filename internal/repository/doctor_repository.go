package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/familycare/clinic-api/internal/domain"
)

// DoctorRepository defines persistence access for the medicos table.
type DoctorRepository interface {
	Create(ctx context.Context, doctor *domain.Doctor) error
	GetByID(ctx context.Context, id int64) (*domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*domain.Doctor, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByLicense(ctx context.Context, license string) (bool, error)
	List(ctx context.Context) ([]domain.Doctor, error)
}

type doctorRepository struct {
	pool *pgxpool.Pool
}

// NewDoctorRepository returns a Postgres-backed implementation.
func NewDoctorRepository(pool *pgxpool.Pool) DoctorRepository {
	return &doctorRepository{pool: pool}
}

const doctorColumns = `id_medico, nombre, apellidos, especialidad, cedula_profesional, telefono, correo, contrasena`

func (r *doctorRepository) Create(ctx context.Context, doctor *domain.Doctor) error {
	const query = `
        INSERT INTO medicos (nombre, apellidos, especialidad, cedula_profesional, telefono, correo, contrasena)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id_medico`

	err := r.pool.QueryRow(ctx, query,
		doctor.Nombre,
		doctor.Apellidos,
		doctor.Especialidad,
		doctor.CedulaProfesional,
		doctor.Telefono,
		doctor.Correo,
		doctor.Contrasena,
	).Scan(&doctor.ID)
	return translateError(err)
}

func (r *doctorRepository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM medicos WHERE id_medico=$1`
	return r.getOne(ctx, query, id)
}

func (r *doctorRepository) GetByEmail(ctx context.Context, email string) (*domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM medicos WHERE correo=$1`
	return r.getOne(ctx, query, email)
}

func (r *doctorRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM medicos WHERE correo=$1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, translateError(err)
}

func (r *doctorRepository) ExistsByLicense(ctx context.Context, license string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM medicos WHERE cedula_profesional=$1)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, license).Scan(&exists)
	return exists, translateError(err)
}

func (r *doctorRepository) List(ctx context.Context) ([]domain.Doctor, error) {
	query := `SELECT ` + doctorColumns + ` FROM medicos ORDER BY id_medico`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	result := []domain.Doctor{}
	for rows.Next() {
		var doctor domain.Doctor
		if err := rows.Scan(
			&doctor.ID,
			&doctor.Nombre,
			&doctor.Apellidos,
			&doctor.Especialidad,
			&doctor.CedulaProfesional,
			&doctor.Telefono,
			&doctor.Correo,
			&doctor.Contrasena,
		); err != nil {
			return nil, err
		}
		result = append(result, doctor)
	}
	return result, rows.Err()
}

func (r *doctorRepository) getOne(ctx context.Context, query string, arg any) (*domain.Doctor, error) {
	var doctor domain.Doctor
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&doctor.ID,
		&doctor.Nombre,
		&doctor.Apellidos,
		&doctor.Especialidad,
		&doctor.CedulaProfesional,
		&doctor.Telefono,
		&doctor.Correo,
		&doctor.Contrasena,
	); err != nil {
		return nil, translateError(err)
	}
	return &doctor, nil
}
